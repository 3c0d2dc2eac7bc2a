package engine

import (
	"fmt"
	"math"
	"strings"
)

// Detail view sentinels.
const (
	AllCategories = "All Categories"
	AllStatuses   = "All Statuses"
)

// ScorePlaceholder is shown instead of an aggregate when there are no claims.
const ScorePlaceholder = "—"

// Claim score formula: base + weight per supporting evidence, capped at 100.
const (
	claimScoreBase     = 40
	claimScorePerProof = 30
)

// DefaultTaxonomy is used when a payload carries no categories of its own.
//
//nolint:gochecknoglobals // Read-only lookup table.
var DefaultTaxonomy = []string{
	"Sleep",
	"Performance",
	"Hormones",
	"Nutrition",
	"Exercise",
	"Stress",
	"Cognition",
}

// Claim is a display record for one verified claim.
type Claim struct {
	ID            int                `json:"id"`
	Title         string             `json:"title"`
	Status        VerificationStatus `json:"status"`
	Supporting    []string           `json:"supporting_evidence"`
	Contradicting []string           `json:"contradicting_evidence"`
	TrustScore    int                `json:"trust_score"`
	Analysis      string             `json:"analysis,omitempty"`
}

// ClaimTrustScore derives a claim score from its supporting evidence count.
func ClaimTrustScore(supporting int) int {
	score := supporting*claimScorePerProof + claimScoreBase
	if score > maxTrustScore {
		return maxTrustScore
	}
	return score
}

// ClaimsFromPayload maps the payload's verification results to claims,
// numbered from 1 in document order.
func ClaimsFromPayload(p *Payload) []Claim {
	if p == nil {
		return nil
	}
	claims := make([]Claim, 0, len(p.VerificationResults))
	for i, e := range p.VerificationResults {
		c := Claim{
			ID:            i + 1,
			Title:         e.Title,
			Status:        e.Result.Status,
			Supporting:    e.Result.SupportingEvidence,
			Contradicting: e.Result.ContradictingEvidence,
			TrustScore:    ClaimTrustScore(len(e.Result.SupportingEvidence)),
		}
		if len(e.Result.SupportingEvidence) > 0 {
			c.Analysis = e.Result.SupportingEvidence[0]
		}
		claims = append(claims, c)
	}
	return claims
}

// ClaimCategories returns the "All Categories" sentinel followed by the
// taxonomy entries that appear in at least one claim title.
func ClaimCategories(p *Payload, claims []Claim) []string {
	taxonomy := DefaultTaxonomy
	if p != nil && len(p.Categories) > 0 {
		taxonomy = p.Categories
	}

	out := []string{AllCategories}
	seen := make(map[string]bool)
	for _, category := range taxonomy {
		key := strings.ToLower(category)
		if seen[key] {
			continue
		}
		for _, c := range claims {
			if strings.Contains(strings.ToLower(c.Title), key) {
				seen[key] = true
				out = append(out, category)
				break
			}
		}
	}
	return out
}

// ClaimQuery is the filter state of the detail view.
type ClaimQuery struct {
	Category string
	Status   string
	Search   string
}

// Matches reports whether c satisfies every filter in q.
func (q ClaimQuery) Matches(c Claim) bool {
	if !IsAllCategory(q.Category) &&
		!strings.Contains(strings.ToLower(c.Title), strings.ToLower(q.Category)) {
		return false
	}
	if q.Status != "" && q.Status != AllStatuses && string(c.Status) != q.Status {
		return false
	}
	if q.Search != "" && !claimContains(c, strings.ToLower(q.Search)) {
		return false
	}
	return true
}

func claimContains(c Claim, needle string) bool {
	if strings.Contains(strings.ToLower(c.Title), needle) {
		return true
	}
	for _, e := range c.Supporting {
		if strings.Contains(strings.ToLower(e), needle) {
			return true
		}
	}
	for _, e := range c.Contradicting {
		if strings.Contains(strings.ToLower(e), needle) {
			return true
		}
	}
	return false
}

// FilterClaims returns the claims matching q, in their original order.
func FilterClaims(claims []Claim, q ClaimQuery) []Claim {
	out := make([]Claim, 0, len(claims))
	for _, c := range claims {
		if q.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// AggregateTrustScore returns the rounded mean of the claim scores.
// ok is false when there are no claims to average.
func AggregateTrustScore(claims []Claim) (int, bool) {
	if len(claims) == 0 {
		return 0, false
	}
	total := 0
	for _, c := range claims {
		total += c.TrustScore
	}
	return int(math.Round(float64(total) / float64(len(claims)))), true
}

// FormatAggregate renders an aggregate score, or the placeholder when absent.
func FormatAggregate(score int, ok bool) string {
	if !ok {
		return ScorePlaceholder
	}
	return fmt.Sprintf("%d%%", score)
}

// StatusOptions returns the status filter choices, sentinel first.
func StatusOptions() []string {
	out := []string{AllStatuses}
	for _, s := range Statuses() {
		out = append(out, string(s))
	}
	return out
}

// InfluencerDetail is the derived, display-ready detail view.
type InfluencerDetail struct {
	Username        string       `json:"username"`
	ProfileImage    string       `json:"profile_image,omitempty"`
	Followers       int64        `json:"follower_count,omitempty"`
	Stats           ProfileStats `json:"stats"`
	Tweets          []string     `json:"tweets,omitempty"`
	Categories      []string     `json:"categories"`
	Query           ClaimQuery   `json:"-"`
	Claims          []Claim      `json:"claims"`
	TotalClaims     int          `json:"total_claims"`
	AggregateScore  *int         `json:"aggregate_trust_score"`
	AggregateString string       `json:"aggregate_display"`
	Degraded        bool         `json:"degraded,omitempty"`
}

// BuildInfluencerDetail derives the detail view for p under q. The
// aggregate score is computed over every claim, not only the filtered ones.
func BuildInfluencerDetail(p *Payload, q ClaimQuery) InfluencerDetail {
	claims := ClaimsFromPayload(p)
	score, ok := AggregateTrustScore(claims)

	d := InfluencerDetail{
		Categories:      ClaimCategories(p, claims),
		Query:           q,
		Claims:          FilterClaims(claims, q),
		TotalClaims:     len(claims),
		AggregateString: FormatAggregate(score, ok),
	}
	if ok {
		d.AggregateScore = &score
	}
	if p != nil {
		d.Username = p.Username
		d.ProfileImage = p.ProfileImage
		d.Followers = p.FollowerCount
		d.Stats = p.Stats
		d.Tweets = p.Tweets
	}
	return d
}
