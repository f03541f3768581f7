// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/muadel/muadel/domain/gradescale"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "20s" as well as plain nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration structure.
type Config struct {
	Scale        ScaleConfig        `yaml:"scale"`
	Ledger       LedgerConfig       `yaml:"ledger"`
	Assistant    AssistantConfig    `yaml:"assistant"`
	Entitlements EntitlementsConfig `yaml:"entitlements"`
	Database     DatabaseConfig     `yaml:"database"`
	Logging      LoggingConfig      `yaml:"logging"`
	Diagnostics  DiagnosticsConfig  `yaml:"diagnostics"`
}

// ScaleConfig selects the active grade scale.
type ScaleConfig struct {
	Active string `yaml:"active"` // "5" or "4"
}

// LedgerConfig configures the daily usage quota.
type LedgerConfig struct {
	DefaultLimit   int            `yaml:"default_limit"`
	Limits         map[string]int `yaml:"limits"`
	PrivilegedOnly []string       `yaml:"privileged_only"`
}

// AssistantConfig configures the completion proxy client.
type AssistantConfig struct {
	ProxyURL      string        `yaml:"proxy_url"`
	APIKey        string        `yaml:"api_key,omitempty"`
	Timeout       Duration      `yaml:"timeout"`
	CacheCapacity int           `yaml:"cache_capacity"`
}

// EntitlementsConfig configures the premium-status provider.
type EntitlementsConfig struct {
	Mode             string        `yaml:"mode"` // "none", "static", "stripe"
	StripeKey        string        `yaml:"stripe_key,omitempty"`
	StaticPrivileged bool          `yaml:"static_privileged,omitempty"`
	RefreshInterval  Duration      `yaml:"refresh_interval"`
}

// DatabaseConfig configures the local store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// DiagnosticsConfig configures the optional health/metrics endpoint.
type DiagnosticsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"` // metrics path (default: /metrics)
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from MUADEL_* environment
// variables, for deployments without a config file.
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries the file first, then falls back to environment
// variables, then to defaults.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// applyEnvOverrides applies MUADEL_* environment variables. Environment
// always overrides file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MUADEL_SCALE"); v != "" {
		cfg.Scale.Active = v
	}
	if v := os.Getenv("MUADEL_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MUADEL_PROXY_URL"); v != "" {
		cfg.Assistant.ProxyURL = v
	}
	if v := os.Getenv("MUADEL_PROXY_API_KEY"); v != "" {
		cfg.Assistant.APIKey = v
	}
	if v := os.Getenv("MUADEL_ENTITLEMENTS_MODE"); v != "" {
		cfg.Entitlements.Mode = v
	}
	if v := os.Getenv("MUADEL_STRIPE_KEY"); v != "" {
		cfg.Entitlements.StripeKey = v
	}
	if v := os.Getenv("MUADEL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MUADEL_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("MUADEL_DIAG_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Diagnostics.Enabled = b
		}
	}
	if v := os.Getenv("MUADEL_DIAG_ADDR"); v != "" {
		cfg.Diagnostics.Addr = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Scale.Active == "" {
		cfg.Scale.Active = gradescale.FiveID
	}
	if cfg.Ledger.DefaultLimit <= 0 {
		cfg.Ledger.DefaultLimit = 2
	}
	if cfg.Ledger.Limits == nil {
		cfg.Ledger.Limits = map[string]int{
			"summary":     1,
			"coverLetter": 1,
		}
	}
	if cfg.Ledger.PrivilegedOnly == nil {
		cfg.Ledger.PrivilegedOnly = []string{"jobMatch"}
	}
	if cfg.Assistant.Timeout <= 0 {
		cfg.Assistant.Timeout = Duration(20 * time.Second)
	}
	if cfg.Assistant.CacheCapacity <= 0 {
		cfg.Assistant.CacheCapacity = 20
	}
	if cfg.Entitlements.Mode == "" {
		cfg.Entitlements.Mode = "none"
	}
	if cfg.Entitlements.RefreshInterval <= 0 {
		cfg.Entitlements.RefreshInterval = Duration(12 * time.Hour)
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "muadel.db"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Diagnostics.Addr == "" {
		cfg.Diagnostics.Addr = "127.0.0.1:9464"
	}
	if cfg.Diagnostics.Path == "" {
		cfg.Diagnostics.Path = "/metrics"
	}
}

func validate(cfg *Config) error {
	if _, ok := gradescale.ByID(cfg.Scale.Active); !ok {
		return fmt.Errorf("unknown scale %q", cfg.Scale.Active)
	}
	for feature, limit := range cfg.Ledger.Limits {
		if limit < 0 {
			return fmt.Errorf("negative limit %d for feature %q", limit, feature)
		}
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Logging.Format)
	}
	switch cfg.Entitlements.Mode {
	case "none", "static", "stripe":
	default:
		return fmt.Errorf("unknown entitlements mode %q", cfg.Entitlements.Mode)
	}
	return nil
}
