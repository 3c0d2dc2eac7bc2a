package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ModeDevelopment, cfg.Mode)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "config", "init", "--global")
	require.NoError(t, err)

	_, err = execute(t, "config", "init", "--global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--global", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	home := setupCLITest(t)
	projectDir := filepath.Join(t.TempDir(), ".trustboard")

	out, err := execute(t, "config", "init", "--project-dir", projectDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.FileExists(t, filepath.Join(projectDir, "config.yaml"))
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	out, err = execute(t, "config", "init", "--project-dir", projectDir, "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLITest(t)

	out, err := execute(t, "config", "set", "api.timeout", "5s")
	require.NoError(t, err)
	assert.Contains(t, out, "Set api.timeout = 5s")

	out, err = execute(t, "config", "get", "api.timeout")
	require.NoError(t, err)
	assert.Equal(t, "5s", strings.TrimSpace(out))

	out, err = execute(t, "config", "get", "logging")
	require.NoError(t, err)
	assert.Contains(t, out, "level: info")

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 5s")
}

func TestConfigSet_DoesNotPersistOverrides(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv(config.EnvAPIURL, "http://example.invalid:9000")

	_, err := execute(t, "config", "set", "mode", "live")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.ModeLive, cfg.Mode)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
}

func TestConfigSet_Errors(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "config", "set", "mode", "staging")
	require.Error(t, err)

	_, err = execute(t, "config", "set", "api.nope", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	_, err = execute(t, "config", "get", "nope")
	require.Error(t, err)
}

func TestConfigShow_AppliesFlagsAndEnv(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvTimeout, "2s")

	out, err := execute(t, "config", "show", "--mode", "mock", "--api-url", "http://api.test")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: mock")
	assert.Contains(t, out, "base_url: http://api.test")
	assert.Contains(t, out, "timeout: 2s")
}

func TestConfigValidate(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "config", "validate", "--verbose", "--mode", "mock")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Mode: mock (fallback: true)")
}

func TestConfigValidate_InvalidFile(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("output:\n  default_format: xml\n"), 0o600))

	_, err := execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_format")
}

func TestRoot_InvalidMode(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "leaderboard", "--mode", "staging")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid mode "staging"`)
}

func TestRoot_ModeFromEnvironment(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvMode, "mock")
	t.Setenv(config.EnvAPIURL, "http://127.0.0.1:1")

	out, err := execute(t, "leaderboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Dr. Peter Attia")
}

func TestRoot_ProjectOverlay(t *testing.T) {
	setupCLITest(t)
	projectDir := filepath.Join(t.TempDir(), ".trustboard")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"),
		[]byte("mode: mock\noutput:\n  default_format: json\n"), 0o600))

	out, err := execute(t, "leaderboard", "--project-dir", projectDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "project overlay selects json output")
}

func TestRoot_FixturesDirOverridesSample(t *testing.T) {
	setupCLITest(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaderboard.json"), []byte(`{
  "stats": {"activeInfluencers": 1, "claimsVerified": 2, "averageTrustScore": 50},
  "influencers": [
    {"rank": 1, "name": "Local Only", "category": "Testing", "trustScore": 50,
     "trend": "up", "followers": "1", "claims": 2, "avatar": ""}
  ]
}`), 0o600))

	out, err := execute(t, "leaderboard", "--mode", "mock", "--fixtures-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Local Only")
	assert.NotContains(t, out, "Dr. Peter Attia")
}
