package wait

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mhyeon/stepsuite/internal/constants"
)

func TestParams_NormalizeFillsDefaults(t *testing.T) {
	p := (Params{URL: "  http://x  "}).Normalize()
	if p.URL != "http://x" {
		t.Fatalf("url not trimmed: %q", p.URL)
	}
	if p.Method != constants.DefaultWaitMethod {
		t.Fatalf("unexpected method: %q", p.Method)
	}
	if p.Expected != constants.DefaultWaitStatus {
		t.Fatalf("unexpected status: %d", p.Expected)
	}
	if p.Timeout != constants.DefaultWaitTimeout || p.Interval != constants.DefaultWaitInterval {
		t.Fatalf("unexpected durations: %v / %v", p.Timeout, p.Interval)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("250ms", time.Second); got != 250*time.Millisecond {
		t.Fatalf("unexpected duration: %v", got)
	}
	if got := ParseDuration("", time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := ParseDuration("garbage", time.Second); got != time.Second {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}

func TestForEndpoint_SucceedsOnceReady(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := ForEndpoint(context.Background(), Params{
		URL:      srv.URL,
		Timeout:  5 * time.Second,
		Interval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("expected readiness, got %v", err)
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 attempts, got %d", calls.Load())
	}
}

func TestForEndpoint_TimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := ForEndpoint(context.Background(), Params{
		URL:      srv.URL,
		Timeout:  150 * time.Millisecond,
		Interval: 20 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestForEndpoint_HangingAttemptRespectsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Hold the request open until the poller gives up on it.
		<-r.Context().Done()
	}))
	defer srv.Close()

	start := time.Now()
	err := ForEndpoint(context.Background(), Params{
		URL:      srv.URL,
		Timeout:  200 * time.Millisecond,
		Interval: 20 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("wait overran its budget: %v", elapsed)
	}
}

func TestForEndpoint_RequiresURL(t *testing.T) {
	if err := ForEndpoint(context.Background(), Params{}); err == nil {
		t.Fatalf("expected error for missing url")
	}
}

func TestForEndpoint_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEndpoint(ctx, Params{URL: srv.URL, Timeout: 5 * time.Second, Interval: 10 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected context error")
	}
}
