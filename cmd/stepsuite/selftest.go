package main

import (
	"context"
	"fmt"
	"net/http/httptest"

	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/mockapi"
	"github.com/mhyeon/stepsuite/internal/wait"
	"github.com/mhyeon/stepsuite/pkg/steps"
	"github.com/spf13/cobra"
)

// selftest exercises the whole stack against the built-in sample API: it
// starts the gin server in-process, waits for readiness, posts one sample
// body and checks the parsed envelope. Useful as an install smoke check.
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run one sample call against the built-in mock API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger().WithComponent("selftest")

		const prefix = "api"
		srv := httptest.NewServer(mockapi.New(prefix))
		defer srv.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := wait.ForEndpoint(ctx, wait.Params{URL: srv.URL + "/healthz"}); err != nil {
			return err
		}

		cfg := &config.Config{BaseURL: srv.URL, URIPrefix: prefix}
		h := steps.NewHarness(cfg)
		results, err := h.Manager.CallSample(ctx, map[string]any{
			"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
		})
		if err != nil {
			return fmt.Errorf("selftest call failed: %w", err)
		}
		if len(results) != 2 {
			return fmt.Errorf("selftest expected 2 result items, got %d", len(results))
		}
		logger.Info("selftest passed", "items", len(results))
		return nil
	},
}
