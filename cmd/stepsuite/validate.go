package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mhyeon/stepsuite/internal/config"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file and environment for problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetViper().GetString("config")

		// Structural pass first: the file must at least be a YAML mapping.
		if raw, err := os.ReadFile(path); err == nil {
			var doc map[string]any
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("%s is not a YAML mapping: %w", path, err)
			}
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := validateJournal(cfg.Journal); err != nil {
			return err
		}

		cmd.Printf("configuration ok: base_url=%s uri_prefix=%s features_dir=%s\n",
			cfg.BaseURL, cfg.URIPrefix, cfg.FeaturesDir)
		return nil
	},
}

func validateJournal(jc journal.Config) error {
	if jc.Disabled {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(jc.Driver)) {
	case "", journal.DriverSqlite:
		return nil
	case journal.DriverPostgres, "postgresql":
		if jc.Postgres.ResolveDSN() == "" {
			return fmt.Errorf("journal: postgres driver needs dsn or host")
		}
		return nil
	default:
		return fmt.Errorf("journal: unsupported driver: %s", jc.Driver)
	}
}
