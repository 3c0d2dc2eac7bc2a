package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/subosito/gotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome        = "TRUSTBOARD_HOME"
	EnvProjectDir  = "TRUSTBOARD_PROJECT_DIR"
	EnvMode        = "TRUSTBOARD_MODE"
	EnvAPIURL      = "TRUSTBOARD_API_URL"
	EnvFallback    = "TRUSTBOARD_FALLBACK"
	EnvTimeout     = "TRUSTBOARD_TIMEOUT"
	EnvFixturesDir = "TRUSTBOARD_FIXTURES_DIR"
	EnvLogLevel    = "TRUSTBOARD_LOG_LEVEL"
	EnvLogFormat   = "TRUSTBOARD_LOG_FORMAT"
)

// ApplyEnv overrides fields from TRUSTBOARD_* variables. Values that fail
// to parse are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvMode); v != "" {
		if mode, err := ParseMode(v); err == nil {
			c.Mode = mode
		}
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvFallback); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Fallback = &b
		}
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv(EnvFixturesDir); v != "" {
		c.Fixtures.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the .env file in dir into the
// process environment. Variables already set are left alone and a missing
// file is not an error.
func LoadDotEnv(dir string) error {
	err := gotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
