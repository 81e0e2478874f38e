package stepsuite

import (
	"context"

	"github.com/mhyeon/stepsuite/internal/auth"
	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/endpoint"
	"github.com/mhyeon/stepsuite/internal/executor"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/mhyeon/stepsuite/internal/scenario"
)

// Re-export commonly used types for public API

// Store is the key/value map passing state between steps of a scenario.
type Store = scenario.Store

// NewStore returns an empty scenario store.
func NewStore() *Store { return scenario.New() }

// HeaderSet holds the bearer-style authorization value for a scenario.
type HeaderSet = auth.HeaderSet

// Executor issues single GET/POST calls with merged headers.
type Executor = executor.Executor

// Request carries the per-call inputs handed to the executor.
type Request = executor.Request

// Values is one ordered record of header or query pairs.
type Values = executor.Values

// Pair is a single name/value entry.
type Pair = executor.Pair

// Manager builds endpoint URLs and parses envelope responses.
type Manager = endpoint.Manager

// Config is the harness configuration document.
type Config = config.Config

// JournalConfig selects and configures the call journal backend.
type JournalConfig = journal.Config

// JournalEntry is one executed call as recorded in the journal.
type JournalEntry = journal.Entry

// LoadConfig reads harness configuration from a YAML file plus environment.
func LoadConfig(path string) (*Config, error) { return config.Load(path) }

// BuildQueryString flattens ordered records to "k=v&k=v" without encoding.
func BuildQueryString(records []Values) string { return executor.BuildQueryString(records) }

// MergeHeaders applies header records over a base set, last write wins.
func MergeHeaders(base map[string]string, records []Values) map[string]string {
	return executor.MergeHeaders(base, records)
}

// AuthMethod is the plugin interface for an authentication method.
type AuthMethod = auth.Method

// AuthFactory builds an AuthMethod from a loosely-typed spec map.
type AuthFactory = auth.Factory

// RegisterAuthProvider exposes custom auth provider registration for library users.
func RegisterAuthProvider(typ string, f AuthFactory) { auth.Register(typ, f) }

// AcquireAuth acquires a header value from the named provider type.
func AcquireAuth(ctx context.Context, typ string, spec map[string]interface{}) (string, error) {
	return auth.Acquire(ctx, typ, spec)
}
