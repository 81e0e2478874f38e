package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mhyeon/stepsuite/internal/auth"
	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/constants"
	"github.com/mhyeon/stepsuite/internal/executor"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/mhyeon/stepsuite/internal/scenario"
	"github.com/tidwall/gjson"
)

// Manager builds fully-qualified endpoint URLs from base-URL/prefix
// configuration and parses raw responses into the envelope shape the
// suite understands. Cross-step inputs (auth header value, ad hoc header
// records, query string, pending body) are read from the scenario store
// where earlier steps left them; each read treats an absent entry as
// empty, never as an error.
type Manager struct {
	BaseURL   string
	URIPrefix string

	exec     *executor.Executor
	store    *scenario.Store
	recorder journal.Recorder
	scenName string
	logger   *common.Logger
}

// NewManager wires a manager to an executor and a scenario store.
func NewManager(baseURL, uriPrefix string, exec *executor.Executor, store *scenario.Store) *Manager {
	return &Manager{
		BaseURL:   baseURL,
		URIPrefix: uriPrefix,
		exec:      exec,
		store:     store,
		logger:    common.GetLogger().WithComponent("endpoint"),
	}
}

// SetRecorder attaches a call journal. A nil recorder disables recording.
func (m *Manager) SetRecorder(r journal.Recorder) { m.recorder = r }

// SetScenarioName labels journal entries with the running scenario.
func (m *Manager) SetScenarioName(name string) { m.scenName = name }

// BuildURI concatenates base URL, path prefix and suffix with single
// slashes in between. Pure string composition; unset configuration
// produces a malformed URL rather than an error.
func (m *Manager) BuildURI(suffix string) string {
	return m.BaseURL + "/" + m.URIPrefix + "/" + suffix
}

// requestFromStore assembles the executor request from whatever earlier
// steps stashed in the scenario store.
func (m *Manager) requestFromStore() executor.Request {
	var req executor.Request
	if v, ok := m.store.GetString(constants.AuthHeaderKey); ok {
		req.Auth = auth.HeaderSet{Token: v}
	}
	if v, ok := m.store.Get(constants.AdditionalHeadersKey); ok {
		if records, ok := v.([]executor.Values); ok {
			req.Headers = records
		}
	}
	if v, ok := m.store.GetString(constants.QueryParamsKey); ok {
		req.Query = v
	}
	return req
}

// Get issues a GET against the built URI with the store-held headers and
// query string. The raw response comes back uninterpreted.
func (m *Manager) Get(ctx context.Context, suffix string) (*resty.Response, error) {
	req := m.requestFromStore()
	url := m.BuildURI(suffix)
	start := time.Now()
	resp, err := m.exec.Get(ctx, url, req)
	m.record(http.MethodGet, url, resp, err, start)
	return resp, err
}

// Post stashes body as the pending request body and issues a POST against
// the built URI. The raw response comes back uninterpreted.
func (m *Manager) Post(ctx context.Context, suffix string, body any) (*resty.Response, error) {
	m.store.Save(constants.PendingBodyKey, body)
	req := m.requestFromStore()
	req.Body, _ = m.store.Get(constants.PendingBodyKey)
	url := m.BuildURI(suffix)
	start := time.Now()
	resp, err := m.exec.Post(ctx, url, req)
	m.record(http.MethodPost, url, resp, err, start)
	return resp, err
}

// CallSample posts body to the fixed sample path and parses the response
// envelope. Transport and parse failures are logged and returned as
// errors so callers can tell an empty result from a failed call.
func (m *Manager) CallSample(ctx context.Context, body any) ([]any, error) {
	resp, err := m.Post(ctx, constants.SamplePathSegment, body)
	if err != nil {
		m.logger.Error("sample endpoint call failed", "error", err)
		return nil, err
	}
	m.store.Save(constants.LastResponseBodyKey, resp.Body())
	results, err := ParseEnvelope(resp.Body())
	if err != nil {
		m.logger.Error("sample endpoint response parse failed", "error", err, "status", resp.StatusCode())
		return nil, err
	}
	return results, nil
}

// ParseEnvelope maps a raw JSON body onto the envelope shape: the
// resultData array as a slice, an empty slice when the field is absent,
// and an error when the body is not JSON at all.
func ParseEnvelope(body []byte) ([]any, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("endpoint: response body is not valid JSON")
	}
	res := gjson.GetBytes(body, constants.ResultDataField)
	if !res.Exists() {
		return []any{}, nil
	}
	items := res.Array()
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value())
	}
	return out, nil
}

// Results decodes the resultData array into a typed slice, giving
// call sites compile-time element types instead of bare interfaces.
func Results[T any](body []byte) ([]T, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("endpoint: response body is not valid JSON")
	}
	res := gjson.GetBytes(body, constants.ResultDataField)
	if !res.Exists() {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		return nil, fmt.Errorf("endpoint: decode %s: %w", constants.ResultDataField, err)
	}
	return out, nil
}

func (m *Manager) record(method, url string, resp *resty.Response, callErr error, start time.Time) {
	if m.recorder == nil {
		return
	}
	e := journal.Entry{
		Scenario:   m.scenName,
		Method:     method,
		URL:        url,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if resp != nil {
		e.StatusCode = resp.StatusCode()
	}
	if callErr != nil {
		e.Failed = true
		e.Error = callErr.Error()
	}
	if err := m.recorder.Record(e); err != nil {
		m.logger.Warn("journal record failed", "error", err)
	}
}
