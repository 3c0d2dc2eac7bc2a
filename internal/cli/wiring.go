package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rshade/trustboard/internal/cache"
	"github.com/rshade/trustboard/internal/config"
	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/fixtures"
	"github.com/rshade/trustboard/internal/logging"
)

// Resolver names, used in logs and metric labels.
const (
	resourceLeaderboard = "leaderboard"
	resourceInfluencer  = "influencer"
)

// backend is the set of resolvers a command reads through. Each command
// invocation builds one, so the cache lives as long as the process.
type backend struct {
	mode         string
	fallback     bool
	registry     *prometheus.Registry
	leaderboards *fetch.Resolver[engine.Leaderboard]
	influencers  *fetch.Resolver[engine.Payload]
}

// activeConfig returns the validated global config.
func activeConfig() (*config.Config, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newBackend builds the resolvers for cfg. Mock mode reads the fixture set
// directly. The other modes read the HTTP API and use the fixture set for
// 429 responses, or for every failure when fallback is enabled.
func newBackend(ctx context.Context, cfg *config.Config) *backend {
	log := logging.FromContext(ctx).With().Str("component", "wiring").Logger()

	set := fixtures.Default(cfg.Fixtures.Dir)
	reg := prometheus.NewRegistry()
	metrics := fetch.NewMetrics(reg)

	b := &backend{
		mode:     cfg.Mode,
		fallback: cfg.FallbackEnabled(),
		registry: reg,
	}

	lbOpts := []fetch.Option[engine.Leaderboard]{
		fetch.WithMetrics[engine.Leaderboard](metrics),
		fetch.WithLogger[engine.Leaderboard](log),
	}
	infOpts := []fetch.Option[engine.Payload]{
		fetch.WithMetrics[engine.Payload](metrics),
		fetch.WithLogger[engine.Payload](log),
	}

	var (
		lbSource  fetch.Source[engine.Leaderboard]
		infSource fetch.Source[engine.Payload]
	)

	if cfg.Mode == config.ModeMock {
		lbSource = fetch.NewFixtureSource[engine.Leaderboard](set.Leaderboard)
		infSource = fetch.NewFixtureSource[engine.Payload](set.Influencer)
	} else {
		httpCfg := fetch.HTTPConfig{
			BaseURL:         cfg.API.BaseURL,
			Timeout:         cfg.API.Timeout,
			RateLimit:       cfg.API.RateLimit,
			Burst:           cfg.API.Burst,
			BreakerFailures: cfg.API.BreakerFailures,
			BreakerTimeout:  cfg.API.BreakerTimeout,
		}
		lbSource = fetch.NewHTTPSource[engine.Leaderboard](resourceLeaderboard, httpCfg, fetch.LeaderboardPath,
			func(lb *engine.Leaderboard) error { return lb.Validate() })
		infSource = fetch.NewHTTPSource[engine.Payload](resourceInfluencer, httpCfg, fetch.InfluencerPath,
			func(p *engine.Payload) error { return p.Validate() })

		if b.fallback {
			lbOpts = append(lbOpts, fetch.WithFallback[engine.Leaderboard](set.Leaderboard))
			infOpts = append(infOpts, fetch.WithFallback[engine.Payload](set.Influencer))
		} else {
			lbOpts = append(lbOpts, fetch.WithFixture[engine.Leaderboard](set.Leaderboard))
			infOpts = append(infOpts, fetch.WithFixture[engine.Payload](set.Influencer))
		}
	}

	b.leaderboards = fetch.NewResolver(resourceLeaderboard, lbSource, cache.NewStore[engine.Leaderboard](), lbOpts...)
	b.influencers = fetch.NewResolver(resourceInfluencer, infSource, cache.NewStore[engine.Payload](), infOpts...)

	log.Debug().Ctx(ctx).
		Str("operation", "new_backend").
		Str("mode", b.mode).
		Bool("fallback", b.fallback).
		Str("base_url", cfg.API.BaseURL).
		Str("fixtures_dir", cfg.Fixtures.Dir).
		Msg("resolvers configured")

	return b
}
