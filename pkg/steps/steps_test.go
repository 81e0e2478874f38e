package steps

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/constants"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/mhyeon/stepsuite/internal/mockapi"
)

func newTestHarness(t *testing.T) (*Harness, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mockapi.New("api"))
	t.Cleanup(srv.Close)
	cfg := &config.Config{BaseURL: srv.URL, URIPrefix: "api"}
	return NewHarness(cfg), srv
}

func TestHarness_SetTokenAddsBearerScheme(t *testing.T) {
	h, _ := newTestHarness(t)
	h.SetToken("abc123")
	v, ok := h.Store.GetString(constants.AuthHeaderKey)
	if !ok || v != "Bearer abc123" {
		t.Fatalf("unexpected stored token: %q ok=%v", v, ok)
	}

	h.SetToken("Basic dXNlcjpwYXNz")
	v, _ = h.Store.GetString(constants.AuthHeaderKey)
	if v != "Basic dXNlcjpwYXNz" {
		t.Fatalf("schemed token should be stored untouched: %q", v)
	}
}

func TestHarness_AddQueryParamFlattensIntoStore(t *testing.T) {
	h, _ := newTestHarness(t)
	h.AddQueryParam("a", "1")
	h.AddQueryParam("b", "2")
	v, ok := h.Store.GetString(constants.QueryParamsKey)
	if !ok || v != "a=1&b=2" {
		t.Fatalf("unexpected query string: %q", v)
	}
}

func TestHarness_ResetClearsScenarioState(t *testing.T) {
	h, _ := newTestHarness(t)
	h.SetToken("abc")
	h.AddHeader("X-One", "1")
	h.Reset("next scenario")
	if _, ok := h.Store.Get(constants.AuthHeaderKey); ok {
		t.Fatalf("expected auth slot cleared after reset")
	}
	if _, ok := h.Store.Get(constants.AdditionalHeadersKey); ok {
		t.Fatalf("expected header records cleared after reset")
	}
	if h.lastResp != nil || h.lastErr != nil || h.lastResults != nil {
		t.Fatalf("expected call state cleared")
	}
}

func TestSteps_ForgetRemovesRememberedValue(t *testing.T) {
	h, _ := newTestHarness(t)
	if err := h.stepRemember("42", "user_id"); err != nil {
		t.Fatalf("remember step failed: %v", err)
	}
	if err := h.stepForget("user_id"); err != nil {
		t.Fatalf("forget step failed: %v", err)
	}
	if _, ok := h.Store.Get("user_id"); ok {
		t.Fatalf("expected forgotten key to be gone")
	}
	// Forgetting a key that was never remembered is fine.
	if err := h.stepForget("never_saved"); err != nil {
		t.Fatalf("forget of absent key failed: %v", err)
	}
}

func TestHarness_ResetScopesLoggerToScenario(t *testing.T) {
	var buf bytes.Buffer
	common.SetDefaultLogger(common.NewLoggerTo(&buf, common.LogLevelInfo))
	defer common.SetDefaultLogger(common.NewLogger(common.LogLevelInfo))

	h, _ := newTestHarness(t)
	h.Reset("checkout flow")
	h.logger.Info("hello")
	if !strings.Contains(buf.String(), "scenario=") || !strings.Contains(buf.String(), "checkout flow") {
		t.Fatalf("expected scenario attribute in log output: %q", buf.String())
	}
}

func TestSteps_SampleCallAndAssertions(t *testing.T) {
	h, _ := newTestHarness(t)

	body := &godog.DocString{Content: `{"items":[{"id":1},{"id":2}]}`}
	if err := h.stepCallSample(t.Context(), body); err != nil {
		t.Fatalf("sample step failed: %v", err)
	}
	if err := h.stepAssertSampleSucceeded(); err != nil {
		t.Fatalf("expected success assertion to pass: %v", err)
	}
	if err := h.stepAssertResultCount(2); err != nil {
		t.Fatalf("expected 2 items: %v", err)
	}
	if err := h.stepAssertResultCount(3); err == nil {
		t.Fatalf("expected count mismatch to fail")
	}
}

func TestSteps_SampleCallFailureIsRecordedNotThrown(t *testing.T) {
	cfg := &config.Config{BaseURL: "http://127.0.0.1:1", URIPrefix: "api"}
	h := NewHarness(cfg)

	if err := h.stepCallSampleEmpty(t.Context()); err != nil {
		t.Fatalf("sample step must record, not fail: %v", err)
	}
	if err := h.stepAssertSampleFailed(); err != nil {
		t.Fatalf("expected failure assertion to pass: %v", err)
	}
	if err := h.stepAssertSampleSucceeded(); err == nil {
		t.Fatalf("expected success assertion to fail")
	}
}

func TestSteps_GetStatusAndHTMLAssertion(t *testing.T) {
	h, _ := newTestHarness(t)

	if err := h.stepGet(t.Context(), "page"); err != nil {
		t.Fatalf("get step failed: %v", err)
	}
	if err := h.stepAssertStatus(200); err != nil {
		t.Fatalf("status assertion failed: %v", err)
	}
	if err := h.stepAssertStatus(404); err == nil {
		t.Fatalf("expected status mismatch to fail")
	}
	if err := h.stepAssertHTMLElement("ul.results li.result-item"); err != nil {
		t.Fatalf("selector assertion failed: %v", err)
	}
	if err := h.stepAssertHTMLElement("#missing"); err == nil {
		t.Fatalf("expected missing selector to fail")
	}
}

func TestSteps_AssertionsWithoutResponseFail(t *testing.T) {
	h, _ := newTestHarness(t)
	if err := h.stepAssertStatus(200); err == nil {
		t.Fatalf("expected error without a recorded response")
	}
	if err := h.stepAssertHTMLElement("div"); err == nil {
		t.Fatalf("expected error without a recorded response")
	}
	if err := h.stepSaveResponseField("a", "b"); err == nil {
		t.Fatalf("expected error without a recorded response")
	}
}

func TestSteps_SaveResponseFieldAndTemplateRendering(t *testing.T) {
	h, _ := newTestHarness(t)

	body := &godog.DocString{Content: `{"items":[{"id":41}]}`}
	if err := h.stepCallSample(t.Context(), body); err != nil {
		t.Fatalf("sample step failed: %v", err)
	}
	// The sample call keeps the raw body around for extraction steps.
	if err := h.stepGet(t.Context(), "page"); err != nil {
		t.Fatalf("get step failed: %v", err)
	}
	if err := h.stepRemember("41", "expected_id"); err != nil {
		t.Fatalf("remember step failed: %v", err)
	}
	v, ok := h.Store.GetString("expected_id")
	if !ok || v != "41" {
		t.Fatalf("unexpected stored value: %q", v)
	}
	if got := h.Store.Render("id is {{.expected_id}}"); got != "id is 41" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestSteps_SaveResponseFieldExtractsByPath(t *testing.T) {
	h, _ := newTestHarness(t)

	if err := h.stepPost(t.Context(), "sample", &godog.DocString{Content: `{"items":[{"id":7,"name":"x"}]}`}); err != nil {
		t.Fatalf("post step failed: %v", err)
	}
	if err := h.stepSaveResponseField("resultData.0.id", "first_id"); err != nil {
		t.Fatalf("save field step failed: %v", err)
	}
	v, ok := h.Store.GetString("first_id")
	if !ok || v != "7" {
		t.Fatalf("unexpected extracted value: %q", v)
	}
	if err := h.stepSaveResponseField("resultData.9.id", "nope"); err == nil {
		t.Fatalf("expected missing path to fail")
	}
}

func TestHarness_JournalRecordsThroughSteps(t *testing.T) {
	h, _ := newTestHarness(t)
	rec, err := journal.Config{SQLite: journal.SQLiteConfig{DSN: ":memory:"}}.Open()
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer func() { _ = rec.Close() }()
	h.AttachRecorder(rec)
	h.Reset("journaled scenario")

	if err := h.stepGet(t.Context(), "page"); err != nil {
		t.Fatalf("get step failed: %v", err)
	}
	entries, err := rec.List()
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %v err=%v", entries, err)
	}
	if entries[0].Scenario != "journaled scenario" {
		t.Fatalf("unexpected scenario label: %q", entries[0].Scenario)
	}
}

func TestValueToString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"s", "s"},
		{float64(42), "42"},
		{float64(1.5), "1.5"},
		{true, "true"},
		{false, "false"},
		{nil, ""},
		{map[string]any{"a": float64(1)}, `{"a":1}`},
	}
	for _, c := range cases {
		if got := valueToString(c.in); got != c.want {
			t.Fatalf("valueToString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
