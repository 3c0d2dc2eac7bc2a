package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/trustboard/internal/engine"
)

// influencerParams holds the flags of the influencer command.
type influencerParams struct {
	category string
	status   string
	search   string
	output   string
}

// NewInfluencerCmd creates the influencer command, which prints the
// profile, aggregate trust score and filtered claim list for one username.
func NewInfluencerCmd() *cobra.Command {
	var params influencerParams

	cmd := &cobra.Command{
		Use:   "influencer <username>",
		Short: "Show the claim verifications of one influencer",
		Long: `Fetches /api/influencer/<username> and prints the profile, the aggregate
trust score over all claims and the claims that match the filters.

Filters combine: a claim is shown only when it matches the category, the
status and the search text.`,
		Example: `  # All claims
  trustboard influencer hubermanlab

  # Verified sleep claims
  trustboard influencer hubermanlab --category Sleep --status verified

  # Claims mentioning magnesium, one JSON object per line
  trustboard influencer hubermanlab --search magnesium --output ndjson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfluencer(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.category, "category", "", "only show claims whose title mentions this category")
	cmd.Flags().StringVar(&params.status, "status", "", "only show claims with this status: verified, questionable or debunked")
	cmd.Flags().StringVar(&params.search, "search", "", "only show claims whose title or evidence contains this text")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

func runInfluencer(cmd *cobra.Command, username string, params influencerParams) error {
	ctx := cmd.Context()

	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username must not be empty")
	}
	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}
	status, err := parseStatusFilter(params.status)
	if err != nil {
		return err
	}

	cfg, err := activeConfig()
	if err != nil {
		return err
	}
	b := newBackend(ctx, cfg)
	res := b.influencers.Resolve(ctx, username)
	if res.Err != nil {
		logger.Error().Ctx(ctx).
			Str("operation", "influencer").
			Str("username", username).
			Err(res.Err).
			Msg("influencer fetch failed")
		return fmt.Errorf("loading influencer %q: %w", username, res.Err)
	}

	d := applyClaimQuery(ctx, res.Data, engine.ClaimQuery{
		Category: params.category,
		Status:   status,
		Search:   params.search,
	})
	d.Degraded = res.Degraded()

	logger.Info().Ctx(ctx).
		Str("operation", "influencer").
		Str("username", username).
		Str("origin", string(res.Origin)).
		Bool("degraded", d.Degraded).
		Int("claims", len(d.Claims)).
		Msg("influencer rendered")

	return engine.RenderInfluencer(cmd.OutOrStdout(), format, d)
}
