package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/logging"
	"github.com/rshade/trustboard/internal/tui"
)

// dashboardParams holds the flags of the dashboard command.
type dashboardParams struct {
	user          string
	prefetch      bool
	prefetchLimit int
}

// NewDashboardCmd creates the interactive dashboard command.
func NewDashboardCmd() *cobra.Command {
	var params dashboardParams

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the leaderboard and influencer details interactively",
		Long: `Opens a terminal dashboard with the leaderboard and an influencer detail pane.

Leaderboard: c/C cycle category, o toggle sort order, enter open influencer.
Detail: c category, s status, / search, esc clear filters or go back, r retry.
tab switches panes, q quits.

When standard output is not a terminal the leaderboard is printed as a table.`,
		Example: `  # Open the dashboard
  trustboard dashboard

  # Open straight into one influencer
  trustboard dashboard --user hubermanlab`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.user, "user", "", "open the detail pane for this username on start")
	cmd.Flags().BoolVar(&params.prefetch, "prefetch", true, "load every leaderboard influencer in the background")
	cmd.Flags().IntVar(&params.prefetchLimit, "prefetch-limit", fetch.DefaultPrefetchLimit,
		"maximum concurrent background fetches")

	return cmd
}

func runDashboard(cmd *cobra.Command, params dashboardParams) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		logger.Info().Ctx(ctx).
			Str("operation", "dashboard").
			Msg("not a terminal, printing leaderboard")
		return runLeaderboard(cmd, leaderboardParams{
			category: engine.AllCategory,
			sort:     string(engine.SortDesc),
		})
	}

	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	if cfg.Logging.File == "" {
		// Log lines on stderr would draw over the alternate screen.
		ctx = zerolog.Nop().WithContext(ctx)
	}
	b := newBackend(ctx, cfg)

	if params.prefetch {
		go warmInfluencers(ctx, b, params.prefetchLimit)
	}

	var opts []tui.AppOption
	if params.user != "" {
		opts = append(opts, tui.WithInitialInfluencer(params.user))
	}

	p := tea.NewProgram(
		tui.NewAppModel(ctx, b.leaderboards, b.influencers, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// warmInfluencers resolves the leaderboard and then every influencer on it
// so that opening a detail pane is served from the cache.
func warmInfluencers(ctx context.Context, b *backend, limit int) {
	res := b.leaderboards.Resolve(ctx, fetch.LeaderboardKey)
	if !res.Ready() {
		return
	}
	keys := influencerKeys(*res.Data)
	results, err := b.influencers.Prefetch(ctx, keys, limit)
	if err != nil {
		return
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logging.FromContext(ctx).Debug().
		Str("component", "cli").
		Str("operation", "prefetch").
		Int("keys", len(keys)).
		Int("failed", failed).
		Msg("influencer prefetch finished")
}

// influencerKeys returns the detail keys of the leaderboard rows: the
// handle when present, the display name otherwise. Duplicates are dropped.
func influencerKeys(lb engine.Leaderboard) []string {
	seen := make(map[string]bool, len(lb.Influencers))
	keys := make([]string, 0, len(lb.Influencers))
	for _, inf := range lb.Influencers {
		key := inf.Handle
		if key == "" {
			key = inf.Name
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}
