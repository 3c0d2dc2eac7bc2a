package fixtures

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/engine"
)

func TestEmbeddedLeaderboard(t *testing.T) {
	lb, err := Default("").Leaderboard()
	require.NoError(t, err)

	assert.Equal(t, 1234, lb.Stats.ActiveInfluencers)
	assert.Equal(t, 25431, lb.Stats.ClaimsVerified)
	assert.InDelta(t, 85.7, lb.Stats.AverageTrustScore, 0.001)
	require.Len(t, lb.Influencers, 7)
	assert.Equal(t, "Dr. Peter Attia", lb.Influencers[0].Name)
	assert.Equal(t, "hubermanlab", lb.Influencers[3].Handle)
	assert.Equal(t, engine.TrendDown, lb.Influencers[4].Trend)
}

func TestEmbeddedInfluencer(t *testing.T) {
	p, err := Default("").Influencer()
	require.NoError(t, err)

	assert.Equal(t, "hubermanlab", p.Username)
	assert.Equal(t, int64(4200000), p.FollowerCount)
	require.Len(t, p.VerificationResults, 3)
	assert.Equal(t, engine.StatusQuestionable, p.VerificationResults[2].Result.Status)
	assert.Equal(t, 89, p.Stats.TrustScore)
	assert.Len(t, p.Categories, 7)
}

func TestSet_ReturnsFreshValues(t *testing.T) {
	s := Default("")
	first, err := s.Leaderboard()
	require.NoError(t, err)
	first.Influencers[0].Name = "mutated"

	second, err := s.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, "Dr. Peter Attia", second.Influencers[0].Name)
}

func TestOverlayFS_LocalFileWins(t *testing.T) {
	dir := t.TempDir()
	local := `{"username":"localuser","verification_results":{}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, InfluencerFile), []byte(local), 0o600))

	s := Default(dir)
	p, err := s.Influencer()
	require.NoError(t, err)
	assert.Equal(t, "localuser", p.Username)

	// Leaderboard is not shadowed and still comes from the embedded set.
	lb, err := s.Leaderboard()
	require.NoError(t, err)
	assert.Len(t, lb.Influencers, 7)
}

func TestSet_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := New(fstest.MapFS{}).Influencer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("invalid json", func(t *testing.T) {
		fsys := fstest.MapFS{InfluencerFile: {Data: []byte("{")}}
		_, err := New(fsys).Influencer()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing fixture")
	})

	t.Run("invalid shape", func(t *testing.T) {
		fsys := fstest.MapFS{LeaderboardFile: {Data: []byte(`{"influencers":[{"rank":2,"trend":"up"}]}`)}}
		_, err := New(fsys).Leaderboard()
		require.ErrorIs(t, err, engine.ErrInvalidRanking)
	})
}
