package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/logging"
)

// parseStatusFilter maps a --status value onto a verification status,
// ignoring case. Empty and "all" select every status.
func parseStatusFilter(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "all", strings.ToLower(engine.AllStatuses):
		return engine.AllStatuses, nil
	}
	for _, st := range engine.Statuses() {
		if strings.EqualFold(s, string(st)) {
			return string(st), nil
		}
	}
	return "", fmt.Errorf("invalid status %q (must be one of %s)", s, strings.Join(engine.StatusOptions(), ", "))
}

// matchOption returns the option equal to s ignoring case, or s unchanged
// when nothing matches.
func matchOption(options []string, s string) string {
	for _, o := range options {
		if strings.EqualFold(o, s) {
			return o
		}
	}
	return s
}

// applyLeaderboardQuery derives the leaderboard view and truncates it to
// limit rows when limit is positive.
func applyLeaderboardQuery(
	ctx context.Context,
	lb engine.Leaderboard,
	q engine.LeaderboardQuery,
	limit int,
) engine.LeaderboardView {
	log := logging.FromContext(ctx)

	q.Category = matchOption(engine.LeaderboardCategories(lb.Influencers), q.Category)
	view := engine.ApplyLeaderboardView(lb, q)
	before := len(view.Influencers)
	if limit > 0 && limit < len(view.Influencers) {
		view.Influencers = view.Influencers[:limit]
	}

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "apply_leaderboard_query").
		Str("category", view.Category).
		Str("order", string(view.Order)).
		Int("total", len(lb.Influencers)).
		Int("matched", before).
		Int("shown", len(view.Influencers)).
		Msg("applied leaderboard query")

	if before == 0 && len(lb.Influencers) > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_leaderboard_query").
			Str("category", q.Category).
			Msg("no influencers match category")
	}
	return view
}

// applyClaimQuery derives the influencer detail for p under q.
func applyClaimQuery(ctx context.Context, p *engine.Payload, q engine.ClaimQuery) engine.InfluencerDetail {
	log := logging.FromContext(ctx)

	switch {
	case engine.IsAllCategory(q.Category):
		q.Category = engine.AllCategories
	case q.Category != "":
		q.Category = matchOption(engine.ClaimCategories(p, engine.ClaimsFromPayload(p)), q.Category)
	}
	d := engine.BuildInfluencerDetail(p, q)

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "apply_claim_query").
		Str("username", d.Username).
		Str("category", q.Category).
		Str("status", q.Status).
		Str("search", q.Search).
		Int("total", d.TotalClaims).
		Int("matched", len(d.Claims)).
		Msg("applied claim query")

	if len(d.Claims) == 0 && d.TotalClaims > 0 {
		log.Warn().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_claim_query").
			Int("total", d.TotalClaims).
			Msg("no claims match filter criteria")
	}
	return d
}
