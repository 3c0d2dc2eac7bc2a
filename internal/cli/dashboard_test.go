package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Under go test stdout is not a terminal, so the dashboard prints the
// leaderboard instead of starting the TUI.
func TestDashboard_NonTerminalPrintsLeaderboard(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "dashboard", "--mode", "mock")
	require.NoError(t, err)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Dr. Peter Attia")
}

func TestServe_RejectsSelfProxy(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "serve", "--mode", "live",
		"--api-url", "http://localhost:5999", "--listen", "127.0.0.1:5999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points at the serve address")
}

func TestServe_RejectsNegativeRateLimit(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "serve", "--mode", "mock", "--rate-limit", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate-limit must be >= 0")
}

func TestServe_ListenError(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "serve", "--mode", "mock", "--listen", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving")
}
