package integration_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/rshade/trustboard/internal/cache"
	"github.com/rshade/trustboard/internal/cli"
	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/fixtures"
	"github.com/rshade/trustboard/internal/server"
)

// isolate points configuration at a temp home and clears TRUSTBOARD_*
// overrides from the environment.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
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
}

// sampleAPI starts a trustboard server that serves the sample data.
func sampleAPI(t *testing.T, cfg server.Config) *httptest.Server {
	t.Helper()
	set := fixtures.Default("")
	leaderboards := fetch.NewResolver("leaderboard",
		fetch.NewFixtureSource[engine.Leaderboard](set.Leaderboard), cache.NewStore[engine.Leaderboard]())
	influencers := fetch.NewResolver("influencer",
		fetch.NewFixtureSource[engine.Payload](set.Influencer), cache.NewStore[engine.Payload]())

	srv := httptest.NewServer(server.New(cfg, leaderboards, influencers).Handler())
	t.Cleanup(srv.Close)
	return srv
}

// trustboard runs the CLI in-process and returns its standard output.
func trustboard(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("integration")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
