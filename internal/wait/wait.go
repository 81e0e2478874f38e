package wait

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/constants"
	"github.com/mhyeon/stepsuite/internal/httpc"
)

// Params holds the normalized inputs for a readiness poll.
type Params struct {
	URL      string
	Method   string
	Expected int
	Timeout  time.Duration
	Interval time.Duration
	TLS      *tls.Config
}

// Normalize fills zero values with the harness defaults.
func (p Params) Normalize() Params {
	p.URL = strings.TrimSpace(p.URL)
	p.Method = strings.ToUpper(strings.TrimSpace(p.Method))
	if p.Method == "" {
		p.Method = constants.DefaultWaitMethod
	}
	if p.Expected == 0 {
		p.Expected = constants.DefaultWaitStatus
	}
	if p.Timeout <= 0 {
		p.Timeout = constants.DefaultWaitTimeout
	}
	if p.Interval <= 0 {
		p.Interval = constants.DefaultWaitInterval
	}
	return p
}

// ParseDuration parses a duration string, falling back to def on empty or
// malformed input.
func ParseDuration(s string, def time.Duration) time.Duration {
	if t := strings.TrimSpace(s); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			return d
		}
	}
	return def
}

// ForEndpoint polls the URL until it answers with the expected status or
// the timeout elapses. Connection errors and wrong statuses are retried
// at the configured interval; this is the only polling loop in the
// harness, and it runs strictly before any suite execution.
func ForEndpoint(ctx context.Context, p Params) error {
	p = p.Normalize()
	if p.URL == "" {
		return fmt.Errorf("wait: url is required")
	}

	logger := common.GetLogger().WithComponent("wait")
	client := (&httpc.Httpc{TlsConfig: p.TLS}).New()

	deadline := time.Now().Add(p.Timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Cap each attempt at the remaining budget so one hanging request
		// cannot overrun the configured timeout.
		attemptCtx, cancel := context.WithDeadline(ctx, deadline)
		resp, err := client.R().SetContext(attemptCtx).Execute(p.Method, p.URL)
		cancel()
		if err == nil && resp.StatusCode() == p.Expected {
			logger.Info("endpoint ready", "url", p.URL, "status", resp.StatusCode())
			return nil
		}
		if err != nil {
			lastErr = err
			logger.Debug("endpoint not ready", "url", p.URL, "error", err)
		} else {
			lastErr = fmt.Errorf("wait: got status %d, want %d", resp.StatusCode(), p.Expected)
			logger.Debug("endpoint not ready", "url", p.URL, "status", resp.StatusCode())
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval):
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("wait: timeout after %s", p.Timeout)
	}
	return fmt.Errorf("wait: %s not ready within %s: %w", p.URL, p.Timeout, lastErr)
}
