package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override (METADESIGNER_PORT, ...)
const EnvPrefix = "METADESIGNER"

type Config struct {
	// Server Settings
	Host                string   `yaml:"host" mapstructure:"host"`
	Port                int      `yaml:"port" mapstructure:"port"`
	Debug               bool     `yaml:"debug" mapstructure:"debug"`
	EnableCORS          bool     `yaml:"enable_cors" mapstructure:"enable_cors"`
	CORSOrigins         []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	MaxUploadMB         int      `yaml:"max_upload_mb" mapstructure:"max_upload_mb"`

	// Storage Settings
	CacheDir                string `yaml:"cache_dir" mapstructure:"cache_dir"`
	TolerateCorruptRegistry bool   `yaml:"tolerate_corrupt_registry" mapstructure:"tolerate_corrupt_registry"`

	// Logging
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`

	// UI Settings
	ColorTheme          string `yaml:"color_theme" mapstructure:"color_theme"`
	CopyHashToClipboard bool   `yaml:"copy_hash_to_clipboard" mapstructure:"copy_hash_to_clipboard"`
	WatchDebounceMS     int    `yaml:"watch_debounce_ms" mapstructure:"watch_debounce_ms"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Host:                    "0.0.0.0",
		Port:                    12002,
		Debug:                   false,
		EnableCORS:              false,
		CORSOrigins:             []string{},
		ReadTimeoutSeconds:      60,
		WriteTimeoutSeconds:     60,
		MaxUploadMB:             512,
		CacheDir:                "",
		TolerateCorruptRegistry: false,
		LogLevel:                "info",
		LogFormat:               "text",
		ColorTheme:              "auto",
		CopyHashToClipboard:     true,
		WatchDebounceMS:         500,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults backfills essential values that a partial file left empty
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Host == "" {
		c.Host = defaults.Host
	}
	if c.Port <= 0 {
		c.Port = defaults.Port
	}
	if c.CORSOrigins == nil {
		c.CORSOrigins = []string{}
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = defaults.ReadTimeoutSeconds
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = defaults.WriteTimeoutSeconds
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = defaults.MaxUploadMB
	}
	if !isValidLogLevel(c.LogLevel) {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat != "json" {
		c.LogFormat = defaults.LogFormat
	}
	if c.ColorTheme == "" {
		c.ColorTheme = defaults.ColorTheme
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = defaults.WatchDebounceMS
	}
}

// Overlay applies environment variables and bound flags from v on top of c.
// Values already in c act as defaults, so the file still wins over nothing.
func (c *Config) Overlay(v *viper.Viper) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var current map[string]any
	if err := yaml.Unmarshal(data, &current); err != nil {
		return fmt.Errorf("failed to flatten config: %w", err)
	}
	for key, value := range current {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to apply overrides: %w", err)
	}

	c.applyDefaults()
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Addr returns the host:port the web server binds to
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
