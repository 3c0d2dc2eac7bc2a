package cli_test

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/cli"
	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/fixtures"
)

// setupCLITest isolates the test from the user's configuration and
// environment. It returns the TRUSTBOARD_HOME directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	for _, key := range []string{
		config.EnvMode, config.EnvAPIURL, config.EnvFallback, config.EnvTimeout,
		config.EnvFixturesDir, config.EnvProjectDir, config.EnvLogFormat,
	} {
		t.Setenv(key, "")
	}
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// execute runs the root command with args and returns what it wrote to
// standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// apiServer answers every request with status and body and counts hits.
func apiServer(t *testing.T, status int, body []byte) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func fixtureBytes(t *testing.T, name string) []byte {
	t.Helper()
	data, err := fs.ReadFile(fixtures.Embedded, name)
	require.NoError(t, err)
	return data
}
