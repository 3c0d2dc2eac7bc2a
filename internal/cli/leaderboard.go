package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
)

// leaderboardParams holds the flags of the leaderboard command.
type leaderboardParams struct {
	category string
	sort     string
	limit    int
	output   string
}

// NewLeaderboardCmd creates the leaderboard command, which prints the
// influencer ranking filtered by category and sorted by trust score.
func NewLeaderboardCmd() *cobra.Command {
	var params leaderboardParams

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the influencer trust leaderboard",
		Long: `Fetches the leaderboard and prints it with the summary statistics.

In development mode a failed fetch falls back to the built-in sample data and
a notice is printed. In live mode the failure is reported instead.`,
		Example: `  # Highest trust score first (default)
  trustboard leaderboard

  # Only nutrition influencers, lowest score first
  trustboard leaderboard --category Nutrition --sort asc

  # Top three as JSON
  trustboard leaderboard --limit 3 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLeaderboard(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.category, "category", engine.AllCategory, "only show influencers in this category")
	cmd.Flags().StringVar(&params.sort, "sort", string(engine.SortDesc), "trust score order: desc or asc")
	cmd.Flags().IntVar(&params.limit, "limit", 0, "show at most this many influencers (0 = all)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

func runLeaderboard(cmd *cobra.Command, params leaderboardParams) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}
	order, err := engine.ParseSortOrder(params.sort)
	if err != nil {
		return err
	}
	if params.limit < 0 {
		return fmt.Errorf("limit must be >= 0, got %d", params.limit)
	}

	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	b := newBackend(ctx, cfg)
	res := b.leaderboards.Resolve(ctx, fetch.LeaderboardKey)
	if res.Err != nil {
		logger.Error().Ctx(ctx).
			Str("operation", "leaderboard").
			Err(res.Err).
			Msg("leaderboard fetch failed")
		return fmt.Errorf("loading leaderboard: %w", res.Err)
	}

	view := applyLeaderboardQuery(ctx, *res.Data, engine.LeaderboardQuery{
		Category: params.category,
		Order:    order,
	}, params.limit)
	view.Degraded = res.Degraded()

	logger.Info().Ctx(ctx).
		Str("operation", "leaderboard").
		Str("origin", string(res.Origin)).
		Bool("degraded", view.Degraded).
		Int("rows", len(view.Influencers)).
		Msg("leaderboard rendered")

	return engine.RenderLeaderboard(cmd.OutOrStdout(), format, view)
}
