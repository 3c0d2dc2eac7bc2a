package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() LeaderboardView {
	lb := Leaderboard{
		Stats:       LeaderboardStats{ActiveInfluencers: 1234, ClaimsVerified: 25431, AverageTrustScore: 85.7},
		Influencers: sampleInfluencers(),
	}
	return ApplyLeaderboardView(lb, LeaderboardQuery{})
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, OutputTable, f)

	f, err = ParseOutputFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, f)

	_, err = ParseOutputFormat("xml")
	require.Error(t, err)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "25,431", FormatCount(25431))
	assert.Equal(t, "4,200,000", FormatCount(4200000))
	assert.Equal(t, "87", FormatCount(87))
}

func TestRenderLeaderboard_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLeaderboard(&buf, OutputTable, sampleView()))

	out := buf.String()
	assert.Contains(t, out, "Active Influencers: 1,234")
	assert.Contains(t, out, "Claims Verified: 25,431")
	assert.Contains(t, out, "85.7%")
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "↑ Highest First")
	assert.NotContains(t, out, degradedNotice)

	// Peter (94) must print before David (87).
	assert.Less(t, strings.Index(out, "Peter"), strings.Index(out, "David"))
}

func TestRenderLeaderboard_EmptyAndDegraded(t *testing.T) {
	view := sampleView()
	view.Influencers = nil
	view.Degraded = true

	var buf bytes.Buffer
	require.NoError(t, RenderLeaderboard(&buf, OutputTable, view))
	assert.Contains(t, buf.String(), degradedNotice)
	assert.Contains(t, buf.String(), "No influencers match")
}

func TestRenderLeaderboard_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderLeaderboard(&buf, OutputNDJSON, sampleView()))

	lines := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var inf Influencer
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &inf))
		lines++
	}
	assert.Equal(t, 7, lines)
}

func TestRenderInfluencer(t *testing.T) {
	d := BuildInfluencerDetail(decodePayload(t), ClaimQuery{})

	var buf bytes.Buffer
	require.NoError(t, RenderInfluencer(&buf, OutputTable, d))
	out := buf.String()
	assert.Contains(t, out, "hubermanlab")
	assert.Contains(t, out, "Trust Score: 90% (based on 3 claims)")
	assert.Contains(t, out, "Showing 3 claims")
	assert.Contains(t, out, "questionable")

	buf.Reset()
	require.NoError(t, RenderInfluencer(&buf, OutputJSON, d))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 90, decoded["aggregate_trust_score"], 0)
}

func TestRenderInfluencer_NoClaims(t *testing.T) {
	d := BuildInfluencerDetail(&Payload{Username: "quiet"}, ClaimQuery{})

	var buf bytes.Buffer
	require.NoError(t, RenderInfluencer(&buf, OutputTable, d))
	assert.Contains(t, buf.String(), "Trust Score: — (based on 0 claims)")
	assert.NotContains(t, buf.String(), "NaN")

	buf.Reset()
	require.NoError(t, RenderInfluencer(&buf, OutputJSON, d))
	assert.Contains(t, buf.String(), `"aggregate_trust_score": null`)
}

func TestTweetPreviews(t *testing.T) {
	tweets := []string{
		"short",
		"this tweet is definitely longer than thirty characters",
		"third",
		"fourth",
	}
	got := TweetPreviews(tweets, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "short...", got[0])
	assert.Equal(t, "this tweet is definitely longe...", got[1])

	assert.Empty(t, TweetPreviews(nil, 3))
}
