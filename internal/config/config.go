package config

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mhyeon/stepsuite/internal/httpc"
	"github.com/mhyeon/stepsuite/internal/journal"
	"github.com/spf13/viper"
)

// AuthConfig describes one auth provider to run before the suite.
type AuthConfig struct {
	// Provider type key (e.g. "static", "basic", "oauth2")
	Type string `mapstructure:"type" yaml:"type"`
	// Provider-specific configuration, decoded by the provider factory
	Config map[string]interface{} `mapstructure:"config" yaml:"config"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format        string `mapstructure:"format" yaml:"format"` // text, json, color
	MaskSensitive *bool  `mapstructure:"mask_sensitive" yaml:"mask_sensitive"`
}

// ClientConfig carries explicit TLS options for the HTTP client.
type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// TLSConfig builds a *tls.Config from the options, or nil when everything
// is default.
func (c ClientConfig) TLSConfig() *tls.Config {
	minV := httpc.ParseTLSVersion(c.MinTLSVersion)
	maxV := httpc.ParseTLSVersion(c.MaxTLSVersion)
	if !c.Insecure && minV == 0 && maxV == 0 {
		return nil
	}
	return &tls.Config{
		InsecureSkipVerify: c.Insecure, // #nosec G402 -- explicit opt-in for test targets
		MinVersion:         minV,
		MaxVersion:         maxV,
	}
}

// WaitConfig drives the optional readiness poll before a suite run.
type WaitConfig struct {
	URL      string `mapstructure:"url" yaml:"url"`
	Method   string `mapstructure:"method" yaml:"method"`
	Status   int    `mapstructure:"status" yaml:"status"`
	Timeout  string `mapstructure:"timeout" yaml:"timeout"`
	Interval string `mapstructure:"interval" yaml:"interval"`
}

// Config is the full harness configuration document.
type Config struct {
	// BaseURL and URIPrefix feed endpoint URL construction. Both are
	// required; they come from API_BASEURL / API_URI_PREFIX or the file.
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	URIPrefix string `mapstructure:"uri_prefix" yaml:"uri_prefix"`

	FeaturesDir string         `mapstructure:"features_dir" yaml:"features_dir"`
	Auth        []AuthConfig   `mapstructure:"auth" yaml:"auth"`
	Client      ClientConfig   `mapstructure:"client" yaml:"client"`
	Logging     LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Journal     journal.Config `mapstructure:"journal" yaml:"journal"`
	Wait        WaitConfig     `mapstructure:"wait" yaml:"wait"`
}

// Load reads configuration from an optional YAML file plus the process
// environment. A .env file in the working directory is folded into the
// environment first (missing .env is fine). Environment values win over
// file values for the two endpoint settings.
func Load(path string) (*Config, error) {
	// Best effort: tests and CI often have no .env at all.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("features_dir", "features")

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// Exact env names are part of the external interface.
	_ = v.BindEnv("base_url", "API_BASEURL")
	_ = v.BindEnv("uri_prefix", "API_URI_PREFIX")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Validate reports missing required settings. URL construction itself
// never fails, so this is the one place absence is surfaced.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("config: base_url is required (API_BASEURL)")
	}
	if strings.TrimSpace(c.URIPrefix) == "" {
		return fmt.Errorf("config: uri_prefix is required (API_URI_PREFIX)")
	}
	return nil
}
