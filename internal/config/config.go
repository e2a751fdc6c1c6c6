// Package config provides configuration management for the trading client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Trading TradingConfig `mapstructure:"trading"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds remote API configuration.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout returns the per-request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// TradingConfig holds order-workflow configuration.
type TradingConfig struct {
	FeePercent        float64 `mapstructure:"fee_percent"`         // fee as % of gross amount
	SuggestDebounceMS int     `mapstructure:"suggest_debounce_ms"` // keystroke debounce
	BannerTTLMS       int     `mapstructure:"banner_ttl_ms"`       // success banner auto-clear
}

// SuggestDebounce returns the suggestion debounce interval.
func (t TradingConfig) SuggestDebounce() time.Duration {
	if t.SuggestDebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(t.SuggestDebounceMS) * time.Millisecond
}

// BannerTTL returns how long a success banner stays before auto-clearing.
func (t TradingConfig) BannerTTL() time.Duration {
	if t.BannerTTLMS <= 0 {
		return 1400 * time.Millisecond
	}
	return time.Duration(t.BannerTTLMS) * time.Millisecond
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/cloudex-trader"
	}
	return filepath.Join(home, ".config", "cloudex-trader")
}

// SessionPath returns the path of the persisted identity session.
func SessionPath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "session.json")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://ift401-cloudex.onrender.com")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("trading.fee_percent", 0.5)
	v.SetDefault("trading.suggest_debounce_ms", 300)
	v.SetDefault("trading.banner_ttl_ms", 1400)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLOUDEX_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CLOUDEX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.Trading.FeePercent < 0 || c.Trading.FeePercent > 100 {
		return fmt.Errorf("trading.fee_percent must be between 0 and 100")
	}
	if c.Trading.SuggestDebounceMS < 0 {
		return fmt.Errorf("trading.suggest_debounce_ms must be non-negative")
	}
	if c.Trading.BannerTTLMS < 0 {
		return fmt.Errorf("trading.banner_ttl_ms must be non-negative")
	}
	return nil
}
