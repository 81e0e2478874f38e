package constants

import (
	"net/http"
	"time"
)

// Scenario store keys shared between steps and the endpoint layer.
const (
	// AuthHeaderKey holds the current auth header set for the scenario.
	AuthHeaderKey = "auth_headers"
	// AdditionalHeadersKey holds ad hoc header records set by steps.
	AdditionalHeadersKey = "additional_headers"
	// QueryParamsKey holds the flattened query string for the next call.
	QueryParamsKey = "query_params"
	// PendingBodyKey holds the body of the next outgoing POST.
	PendingBodyKey = "pending_request_body"
	// LastResponseBodyKey holds the raw body of the most recent response.
	LastResponseBodyKey = "last_response_body"
)

// HTTP client settings.
const (
	// DefaultRequestTimeout bounds every single request issued by the
	// executor. There is no retry; on expiry the error propagates.
	DefaultRequestTimeout = 150 * time.Second
)

// Endpoint paths.
const (
	// SamplePathSegment is the fixed suffix used by the sample endpoint call.
	SamplePathSegment = "sample"
	// ResultDataField is the envelope field carrying the result sequence.
	ResultDataField = "resultData"
)

// Journal database defaults.
const (
	DefaultPostgresPort    = 5432
	DefaultPostgresSSLMode = "disable"

	DefaultJournalTable    = "call_journal"
	DefaultSQLiteBusyMS    = 5000
	DefaultJournalFileName = "stepsuite.db"
)

// Readiness wait defaults.
const (
	DefaultWaitTimeout  = 60 * time.Second
	DefaultWaitInterval = 2 * time.Second
	DefaultWaitStatus   = http.StatusOK
	DefaultWaitMethod   = http.MethodGet
)
