package main

import (
	"os"

	"github.com/mhyeon/stepsuite/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "stepsuite",
	Short: "Run behavior-driven API suites defined in feature files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	v := viper.GetViper()
	v.SetDefault("config", "./config/config.yaml")
	v.SetDefault("features", "")
	v.SetDefault("format", "pretty")

	// Environment variables support: STEPSUITE_CONFIG, STEPSUITE_FEATURES, ...
	v.SetEnvPrefix("STEPSUITE")
	v.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml")
	runCmd.Flags().String("features", v.GetString("features"), "features directory (overrides config)")
	runCmd.Flags().String("format", v.GetString("format"), "godog output format (pretty, progress, junit)")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("features", runCmd.Flags().Lookup("features"))
	_ = v.BindPFlag("format", runCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(selftestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
