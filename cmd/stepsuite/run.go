package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/mhyeon/stepsuite/internal/auth"
	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/wait"
	"github.com/mhyeon/stepsuite/pkg/steps"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the feature suite against the configured API",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		cfg, err := config.Load(v.GetString("config"))
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		setupLogger(cfg.Logging)

		featuresDir := strings.TrimSpace(v.GetString("features"))
		if featuresDir == "" {
			featuresDir = cfg.FeaturesDir
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if strings.TrimSpace(cfg.Wait.URL) != "" {
			p := wait.Params{
				URL:      cfg.Wait.URL,
				Method:   cfg.Wait.Method,
				Expected: cfg.Wait.Status,
				Timeout:  wait.ParseDuration(cfg.Wait.Timeout, 0),
				Interval: wait.ParseDuration(cfg.Wait.Interval, 0),
				TLS:      cfg.Client.TLSConfig(),
			}
			if err := wait.ForEndpoint(ctx, p); err != nil {
				return err
			}
		}

		rec, err := cfg.Journal.Open()
		if err != nil {
			return err
		}
		if rec != nil {
			defer func() { _ = rec.Close() }()
		}

		h := steps.NewHarness(cfg)
		h.AttachRecorder(rec)
		if err := acquireAuth(ctx, cfg, h); err != nil {
			return err
		}

		suite := godog.TestSuite{
			Name: "stepsuite",
			ScenarioInitializer: func(sc *godog.ScenarioContext) {
				steps.Register(sc, h)
			},
			Options: &godog.Options{
				Format: v.GetString("format"),
				Paths:  []string{featuresDir},
				Strict: true,
			},
		}
		if status := suite.Run(); status != 0 {
			return fmt.Errorf("suite finished with status %d", status)
		}
		return nil
	},
}

// acquireAuth runs the configured providers in order; the last one wins
// the Authorization slot, matching the merge semantics of the executor.
func acquireAuth(ctx context.Context, cfg *config.Config, h *steps.Harness) error {
	for _, a := range cfg.Auth {
		value, err := auth.Acquire(ctx, a.Type, a.Config)
		if err != nil {
			return fmt.Errorf("acquire %s auth: %w", a.Type, err)
		}
		h.SetToken(value)
	}
	return nil
}

func setupLogger(lc config.LoggingConfig) {
	level := common.ParseLogLevel(lc.Level)
	var logger *common.Logger
	switch strings.ToLower(strings.TrimSpace(lc.Format)) {
	case "json":
		logger = common.NewJSONLogger(level)
	case "color":
		logger = common.NewColorLogger(level)
	default:
		logger = common.NewLogger(level)
	}
	maskingEnabled := true
	if lc.MaskSensitive != nil {
		maskingEnabled = *lc.MaskSensitive
	}
	logger.EnableMasking(maskingEnabled)
	common.SetDefaultLogger(logger)
}
