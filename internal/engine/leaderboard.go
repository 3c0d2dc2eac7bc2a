package engine

import (
	"fmt"
	"sort"
	"strings"
)

// AllCategory is the leaderboard category sentinel that disables filtering.
const AllCategory = "All"

// IsAllCategory reports whether category is empty or one of the category
// sentinels of either view, ignoring case.
func IsAllCategory(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" ||
		strings.EqualFold(category, AllCategory) ||
		strings.EqualFold(category, AllCategories)
}

// maxTrustScore is the upper bound of every trust score.
const maxTrustScore = 100

// SortOrder is the direction of the trust score sort.
type SortOrder string

// Sort orders.
const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Toggle returns the opposite sort order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Label returns the toggle button text for the order.
func (o SortOrder) Label() string {
	if o == SortAsc {
		return "↓ Lowest First"
	}
	return "↑ Highest First"
}

// ParseSortOrder parses "asc" or "desc" (case-insensitive). Empty means desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(SortDesc):
		return SortDesc, nil
	case string(SortAsc):
		return SortAsc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q (must be asc or desc)", s)
	}
}

// LeaderboardCategories returns the "All" sentinel followed by the distinct
// categories in order of first appearance.
func LeaderboardCategories(influencers []Influencer) []string {
	categories := []string{AllCategory}
	seen := make(map[string]bool)
	for _, inf := range influencers {
		if seen[inf.Category] {
			continue
		}
		seen[inf.Category] = true
		categories = append(categories, inf.Category)
	}
	return categories
}

// FilterByCategory returns the influencers in category. The sentinel or an
// empty category returns a copy of the full list.
func FilterByCategory(influencers []Influencer, category string) []Influencer {
	if IsAllCategory(category) {
		out := make([]Influencer, len(influencers))
		copy(out, influencers)
		return out
	}

	out := make([]Influencer, 0, len(influencers))
	for _, inf := range influencers {
		if inf.Category == category {
			out = append(out, inf)
		}
	}
	return out
}

// SortByTrustScore returns a new slice ordered by trust score. The sort is
// stable in both directions: equal scores keep their input order.
func SortByTrustScore(influencers []Influencer, order SortOrder) []Influencer {
	sorted := make([]Influencer, len(influencers))
	copy(sorted, influencers)

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortAsc {
			return sorted[i].TrustScore < sorted[j].TrustScore
		}
		return sorted[i].TrustScore > sorted[j].TrustScore
	})
	return sorted
}

// LeaderboardQuery is the filter state of the leaderboard view.
type LeaderboardQuery struct {
	Category string
	Order    SortOrder
}

// LeaderboardView is the derived, display-ready leaderboard.
type LeaderboardView struct {
	Stats       LeaderboardStats `json:"stats"`
	Categories  []string         `json:"categories"`
	Category    string           `json:"category"`
	Order       SortOrder        `json:"order"`
	Influencers []Influencer     `json:"influencers"`
	Degraded    bool             `json:"degraded,omitempty"`
}

// ApplyLeaderboardView filters and sorts lb according to q.
func ApplyLeaderboardView(lb Leaderboard, q LeaderboardQuery) LeaderboardView {
	category := q.Category
	if IsAllCategory(category) {
		category = AllCategory
	}
	order := q.Order
	if order == "" {
		order = SortDesc
	}

	return LeaderboardView{
		Stats:       lb.Stats,
		Categories:  LeaderboardCategories(lb.Influencers),
		Category:    category,
		Order:       order,
		Influencers: SortByTrustScore(FilterByCategory(lb.Influencers, category), order),
	}
}
