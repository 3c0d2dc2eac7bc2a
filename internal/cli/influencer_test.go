package cli_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fixtures"
)

func TestInfluencer_MockTable(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "influencer", "hubermanlab", "--mode", "mock")
	require.NoError(t, err)

	assert.Contains(t, out, "hubermanlab")
	assert.Contains(t, out, "(based on 3 claims)")
	assert.Contains(t, out, "Followers: 4,200,000")
	assert.Contains(t, out, "Showing 3 claims")
	assert.Contains(t, out, "questionable")
}

func TestInfluencer_Filters(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantClaims int
		wantStatus engine.VerificationStatus
	}{
		{name: "no filters", wantClaims: 3},
		{name: "category ignores case", args: []string{"--category", "sleep"}, wantClaims: 1},
		{name: "all categories", args: []string{"--category", "all"}, wantClaims: 3},
		{name: "all categories sentinel", args: []string{"--category", "All Categories"}, wantClaims: 3},
		{name: "leaderboard sentinel", args: []string{"--category", "All"}, wantClaims: 3},
		{name: "status", args: []string{"--status", "questionable"}, wantClaims: 1, wantStatus: engine.StatusQuestionable},
		{name: "status and category", args: []string{"--status", "Verified", "--category", "Sleep"}, wantClaims: 1, wantStatus: engine.StatusVerified},
		{name: "search evidence", args: []string{"--search", "catecholamine"}, wantClaims: 1},
		{name: "no match", args: []string{"--status", "debunked"}, wantClaims: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			args := append([]string{"influencer", "hubermanlab", "--mode", "mock", "-o", "json"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var d engine.InfluencerDetail
			require.NoError(t, json.Unmarshal([]byte(out), &d))
			assert.Len(t, d.Claims, tt.wantClaims)
			assert.Equal(t, 3, d.TotalClaims, "aggregate covers every claim")
			require.NotNil(t, d.AggregateScore)
			for _, c := range d.Claims {
				if tt.wantStatus != "" {
					assert.Equal(t, tt.wantStatus, c.Status)
				}
			}
		})
	}
}

func TestInfluencer_NDJSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "influencer", "hubermanlab", "--mode", "mock", "--output", "ndjson")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var c engine.Claim
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &c))
	assert.Equal(t, 1, c.ID)
}

func TestInfluencer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing username", []string{"influencer"}, "accepts 1 arg"},
		{"blank username", []string{"influencer", "  "}, "username must not be empty"},
		{"bad status", []string{"influencer", "hubermanlab", "--status", "maybe"}, `invalid status "maybe"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := execute(t, append(tt.args, "--mode", "mock")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInfluencer_LiveRequestsUsername(t *testing.T) {
	setupCLITest(t)

	body := fixtureBytes(t, fixtures.InfluencerFile)
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "influencer", "hubermanlab", "--mode", "live", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "/api/influencer/hubermanlab", path)
	assert.NotContains(t, out, "NOTE:")
}

func TestInfluencer_LiveNotFound(t *testing.T) {
	setupCLITest(t)
	srv, _ := apiServer(t, http.StatusNotFound, []byte(`{"error":"not found"}`))

	_, err := execute(t, "influencer", "nobody", "--mode", "live", "--api-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `loading influencer "nobody"`)
	assert.Contains(t, err.Error(), "404")
}

func TestInfluencer_DevelopmentFallback(t *testing.T) {
	setupCLITest(t)
	srv, _ := apiServer(t, http.StatusOK, []byte(`[1, 2, 3]`))

	out, err := execute(t, "influencer", "someone", "--mode", "development", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "NOTE: live data unavailable, showing sample data")
}
