// Package config loads trustboard settings from YAML, a project overlay,
// a .env file and TRUSTBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Execution modes.
const (
	// ModeMock serves fixture data and never touches the network.
	ModeMock = "mock"
	// ModeDevelopment fetches live data and falls back to fixtures on failure.
	ModeDevelopment = "development"
	// ModeLive fetches live data and surfaces every failure.
	ModeLive = "live"
)

const (
	configFileName = "config.yaml"
	configFilePerm = 0o600
	configDirPerm  = 0o700

	defaultBaseURL         = "http://localhost:5000"
	defaultTimeout         = 10 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
	defaultListen          = "127.0.0.1:5000"
)

// Config is the full trustboard configuration.
type Config struct {
	// Mode is mock, development or live.
	Mode string `yaml:"mode"`

	// Fallback overrides the mode's fallback policy when set.
	Fallback *bool `yaml:"fallback,omitempty"`

	API      APIConfig      `yaml:"api"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`

	configPath string
}

// APIConfig describes the remote API the fetcher reads from.
type APIConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
	Burst           int           `yaml:"burst"`
	BreakerFailures uint32        `yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

// FixturesConfig points at an optional directory that shadows the
// embedded fixture files.
type FixturesConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig holds output preferences.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ServerConfig configures `trustboard serve`.
type ServerConfig struct {
	Listen    string  `yaml:"listen"`
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// Default returns a Config with built-in defaults only.
func Default() *Config {
	return &Config{
		Mode: ModeDevelopment,
		API: APIConfig{
			BaseURL:         defaultBaseURL,
			Timeout:         defaultTimeout,
			BreakerFailures: defaultBreakerFailures,
			BreakerTimeout:  defaultBreakerTimeout,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Listen: defaultListen,
		},
	}
}

// New returns defaults overlaid with the user config file and environment.
// A missing or unreadable config file leaves the defaults in place.
func New() *Config {
	cfg := loadFileOrDefault()
	cfg.ApplyEnv()
	return cfg
}

func loadFileOrDefault() *Config {
	path, err := DefaultConfigPath()
	if err != nil {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
		cfg.configPath = path
	}
	return cfg
}

// Load reads path on top of the defaults without applying the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfigPath returns $TRUSTBOARD_HOME/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.configPath
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.configPath = path
}

// FallbackEnabled reports whether failed fetches are replaced with fixture
// data. Development mode enables it unless Fallback says otherwise.
func (c *Config) FallbackEnabled() bool {
	if c.Fallback != nil {
		return *c.Fallback
	}
	return c.Mode != ModeLive
}

// Validate checks the configuration for values the fetcher cannot use.
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Mode != ModeMock && strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url is required unless mode is mock")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative: %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 || c.Server.RateLimit < 0 {
		return errors.New("rate limits must not be negative")
	}
	switch strings.ToLower(c.Output.DefaultFormat) {
	case "", "table", "json", "ndjson":
	default:
		return fmt.Errorf("output.default_format must be table, json or ndjson: %q", c.Output.DefaultFormat)
	}
	return nil
}

// Save writes the config as YAML to its path, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		c.configPath = path
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ParseMode normalises a mode name. Empty means development.
func ParseMode(s string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "":
		return ModeDevelopment, nil
	case ModeMock, ModeDevelopment, ModeLive:
		return m, nil
	case "dev":
		return ModeDevelopment, nil
	case "production", "prod":
		return ModeLive, nil
	default:
		return "", fmt.Errorf("invalid mode %q (must be mock, development or live)", s)
	}
}
