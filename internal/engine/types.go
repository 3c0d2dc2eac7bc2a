package engine

import (
	"errors"
	"fmt"
)

// VerificationStatus is the outcome of checking a single health claim.
type VerificationStatus string

// Verification statuses reported by the influencer endpoint.
const (
	StatusVerified     VerificationStatus = "Verified"
	StatusQuestionable VerificationStatus = "Questionable"
	StatusDebunked     VerificationStatus = "Debunked"
)

// Valid reports whether s is one of the known verification statuses.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusVerified, StatusQuestionable, StatusDebunked:
		return true
	default:
		return false
	}
}

// Statuses lists the verification statuses in display order.
func Statuses() []VerificationStatus {
	return []VerificationStatus{StatusVerified, StatusQuestionable, StatusDebunked}
}

// Trend is the recent direction of an influencer's trust score.
type Trend string

// Trend values.
const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Arrow returns the arrow glyph used for the trend column.
func (t Trend) Arrow() string {
	if t == TrendUp {
		return "↗" // north east arrow
	}
	return "↘" // south east arrow
}

// Influencer is a single leaderboard row.
type Influencer struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	Handle     string `json:"handle,omitempty"`
	Category   string `json:"category"`
	TrustScore int    `json:"trustScore"`
	Trend      Trend  `json:"trend"`
	Followers  string `json:"followers"`
	Claims     int    `json:"claims"`
	Avatar     string `json:"avatar"`
}

// LeaderboardStats holds the summary cards shown above the leaderboard.
type LeaderboardStats struct {
	ActiveInfluencers int     `json:"activeInfluencers"`
	ClaimsVerified    int     `json:"claimsVerified"`
	AverageTrustScore float64 `json:"averageTrustScore"`
}

// Leaderboard is the payload of the leaderboard endpoint.
type Leaderboard struct {
	Stats       LeaderboardStats `json:"stats"`
	Influencers []Influencer     `json:"influencers"`
}

// VerificationResult is the verification outcome for one claim title.
type VerificationResult struct {
	Status                VerificationStatus `json:"verification_status"`
	SupportingEvidence    []string           `json:"supporting_evidence"`
	ContradictingEvidence []string           `json:"contradicting_evidence"`
	TrustScore            int                `json:"trust_score"`
}

// ProfileStats holds the profile-level figures for an influencer.
type ProfileStats struct {
	TrustScore          int    `json:"trust_score"`
	YearlyRevenue       string `json:"yearly_revenue"`
	ProductsCount       int    `json:"products_count"`
	TotalClaimsAnalyzed int    `json:"total_claims_analyzed"`
}

// Payload is the body of GET /api/influencer/{username}.
type Payload struct {
	Username            string              `json:"username"`
	ProfileImage        string              `json:"profile_image"`
	FollowerCount       int64               `json:"follower_count,omitempty"`
	Tweets              []string            `json:"tweets"`
	HealthClaims        []string            `json:"health_claims,omitempty"`
	VerificationResults VerificationResults `json:"verification_results"`
	Stats               ProfileStats        `json:"stats"`
	Categories          []string            `json:"categories,omitempty"`
}

// Errors returned by payload validation.
var (
	ErrMissingUsername = errors.New("payload has no username")
	ErrInvalidStatus   = errors.New("invalid verification status")
	ErrInvalidRanking  = errors.New("invalid leaderboard ranking")
	ErrInvalidScore    = errors.New("trust score out of range")
	ErrInvalidTrend    = errors.New("invalid trend")
)

// Validate checks that the payload has the shape the detail view expects.
func (p *Payload) Validate() error {
	if p.Username == "" {
		return ErrMissingUsername
	}
	for _, entry := range p.VerificationResults {
		if !entry.Result.Status.Valid() {
			return fmt.Errorf("%w: %q for claim %q", ErrInvalidStatus, entry.Result.Status, entry.Title)
		}
	}
	return nil
}

// Validate checks rank density and value ranges of the leaderboard rows.
func (lb *Leaderboard) Validate() error {
	seen := make(map[int]bool, len(lb.Influencers))
	for _, inf := range lb.Influencers {
		if inf.Rank < 1 || inf.Rank > len(lb.Influencers) || seen[inf.Rank] {
			return fmt.Errorf("%w: rank %d for %q", ErrInvalidRanking, inf.Rank, inf.Name)
		}
		seen[inf.Rank] = true
		if inf.TrustScore < 0 || inf.TrustScore > maxTrustScore {
			return fmt.Errorf("%w: %d for %q", ErrInvalidScore, inf.TrustScore, inf.Name)
		}
		if inf.Trend != TrendUp && inf.Trend != TrendDown {
			return fmt.Errorf("%w: %q for %q", ErrInvalidTrend, inf.Trend, inf.Name)
		}
	}
	return nil
}
