package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/config"
)

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, "http://localhost:5000", target.API.BaseURL, "absent sections untouched")
	assert.Equal(t, "info", target.Logging.Level)
}

func TestShallowMergeYAML_SectionReplacedWholesale(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
api:
  base_url: http://overlay.example
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "http://overlay.example", target.API.BaseURL)
	assert.Equal(t, time.Duration(0), target.API.Timeout, "keys missing from the overlay section are zeroed")
	assert.Zero(t, target.API.BreakerFailures)
}

func TestShallowMergeYAML_ScalarKeys(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
mode: mock
fallback: false
fixtures:
  dir: ./fixtures
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, config.ModeMock, target.Mode)
	require.NotNil(t, target.Fallback)
	assert.False(t, *target.Fallback)
	assert.Equal(t, "./fixtures", target.Fixtures.Dir)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
unknown_section:
  foo: bar
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, "# only a comment\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.Default().API, target.API)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, "whatever"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading overlay file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		overlay := writeOverlay(t, "server: [unclosed")
		require.Error(t, config.ShallowMergeYAML(config.Default(), overlay))
	})

	t.Run("wrong section type", func(t *testing.T) {
		overlay := writeOverlay(t, "server: 42\n")
		err := config.ShallowMergeYAML(config.Default(), overlay)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `applying overlay section "server"`)
	})
}
