package steps

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mhyeon/stepsuite/internal/auth"
	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/constants"
	"github.com/mhyeon/stepsuite/internal/endpoint"
	"github.com/mhyeon/stepsuite/internal/executor"
	"github.com/mhyeon/stepsuite/internal/httpc"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/mhyeon/stepsuite/internal/scenario"
)

// Harness owns the per-scenario state the step definitions operate on:
// the scenario store, the executor and the endpoint manager. The resty
// client and the journal recorder are shared across scenarios; everything
// else is replaced by Reset so scenarios cannot leak state into each
// other.
type Harness struct {
	cfg      *config.Config
	client   *resty.Client
	exec     *executor.Executor
	recorder journal.Recorder
	logger   *common.Logger

	Store   *scenario.Store
	Manager *endpoint.Manager

	headerRecords []executor.Values
	queryRecords  []executor.Values

	lastResp    *resty.Response
	lastResults []any
	lastErr     error
}

// NewHarness builds a harness from configuration. The journal, when one
// is configured, is attached separately via AttachRecorder so the caller
// controls its lifetime.
func NewHarness(cfg *config.Config) *Harness {
	h := &Harness{cfg: cfg}
	hc := httpc.Httpc{TlsConfig: cfg.Client.TLSConfig()}
	h.client = hc.New()
	h.exec = executor.New(h.client)
	h.Reset("")
	return h
}

// AttachRecorder shares a journal recorder with every scenario.
func (h *Harness) AttachRecorder(r journal.Recorder) {
	h.recorder = r
	if h.Manager != nil {
		h.Manager.SetRecorder(r)
	}
}

// Reset discards all scenario state and prepares for the named scenario.
func (h *Harness) Reset(scenarioName string) {
	h.logger = common.GetLogger().WithComponent("harness")
	if scenarioName != "" {
		h.logger = h.logger.WithScenario(scenarioName)
	}
	h.Store = scenario.New()
	h.Manager = endpoint.NewManager(h.cfg.BaseURL, h.cfg.URIPrefix, h.exec, h.Store)
	h.Manager.SetRecorder(h.recorder)
	h.Manager.SetScenarioName(scenarioName)
	h.headerRecords = nil
	h.queryRecords = nil
	h.lastResp = nil
	h.lastResults = nil
	h.lastErr = nil
}

// SetToken installs the auth header value for subsequent calls. A bare
// token is given the Bearer scheme; values already carrying a scheme are
// stored untouched. Expired JWTs are allowed through with a warning so a
// suite can deliberately test rejection paths.
func (h *Harness) SetToken(token string) {
	value := strings.TrimSpace(token)
	if value != "" && !strings.Contains(value, " ") {
		value = "Bearer " + value
	}
	if auth.Expired(value, time.Now()) {
		h.logger.Warn("auth token is expired", "token", value)
	}
	h.Store.Save(constants.AuthHeaderKey, value)
}

// AddHeader appends one ad hoc header record for subsequent calls.
func (h *Harness) AddHeader(name, value string) {
	h.headerRecords = append(h.headerRecords, executor.Values{{Name: name, Value: value}})
	h.Store.Save(constants.AdditionalHeadersKey, h.headerRecords)
}

// AddQueryParam appends one query parameter and refreshes the flattened
// query string in the store.
func (h *Harness) AddQueryParam(name, value string) {
	h.queryRecords = append(h.queryRecords, executor.Values{{Name: name, Value: value}})
	h.Store.Save(constants.QueryParamsKey, executor.BuildQueryString(h.queryRecords))
}
