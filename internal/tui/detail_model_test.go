package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
)

// openedDetail returns a detail model that has finished loading username.
func openedDetail(t *testing.T, r Resolver[engine.Payload], username string) DetailModel {
	t.Helper()
	m := NewDetailModel(context.Background(), r)
	m, cmd := m.Open(username)
	require.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Loading")

	updated, _ := m.Update(findMsg[InfluencerLoadedMsg](t, cmd))
	return updated.(DetailModel)
}

func TestDetailModel_EmptyBeforeOpen(t *testing.T) {
	m := NewDetailModel(context.Background(), mockInfluencers())
	assert.Contains(t, m.View(), msgNoData)
	assert.Nil(t, m.Init())
}

func TestDetailModel_Open(t *testing.T) {
	m := openedDetail(t, mockInfluencers(), "hubermanlab")
	require.Equal(t, ViewStateDetail, m.State())

	d := m.Detail()
	assert.Equal(t, "hubermanlab", d.Username)
	assert.Len(t, d.Claims, 3)
	assert.Equal(t, "90%", d.AggregateString)

	out := m.View()
	assert.Contains(t, out, "based on 3 claims")
	assert.Contains(t, out, "Showing 3 of 3 claims")
	assert.NotContains(t, out, msgDegraded, "mock data is not a substitution")
}

func TestDetailModel_OpenCachedIsImmediate(t *testing.T) {
	r := mockInfluencers()
	require.True(t, r.Resolve(context.Background(), "hubermanlab").Ready())

	m := NewDetailModel(context.Background(), r)
	m, cmd := m.Open("hubermanlab")
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateDetail, m.State())
}

func TestDetailModel_Filters(t *testing.T) {
	m := openedDetail(t, mockInfluencers(), "hubermanlab")

	updated, _ := m.Update(keyRunes("s"))
	m = updated.(DetailModel)
	assert.Equal(t, "Verified", m.Query().Status)
	assert.Len(t, m.Detail().Claims, 2)

	updated, _ = m.Update(keyRunes("c"))
	m = updated.(DetailModel)
	assert.Equal(t, "Sleep", m.Query().Category)
	assert.Len(t, m.Detail().Claims, 1)

	// Aggregate stays computed over all claims.
	assert.Equal(t, "90%", m.Detail().AggregateString)

	updated, cmd := m.Update(keyType(tea.KeyEsc))
	m = updated.(DetailModel)
	assert.Nil(t, cmd, "first esc clears filters")
	assert.Equal(t, engine.AllCategories, m.Query().Category)
	assert.Len(t, m.Detail().Claims, 3)

	_, cmd = m.Update(keyType(tea.KeyEsc))
	findMsg[BackMsg](t, cmd)
}

func TestDetailModel_NoMatches(t *testing.T) {
	m := openedDetail(t, mockInfluencers(), "hubermanlab")

	for range 3 {
		updated, _ := m.Update(keyRunes("s"))
		m = updated.(DetailModel)
	}
	assert.Equal(t, "Debunked", m.Query().Status)
	assert.Empty(t, m.Detail().Claims)
	assert.Contains(t, m.View(), msgNoMatches)
}

func TestDetailModel_Search(t *testing.T) {
	m := openedDetail(t, mockInfluencers(), "hubermanlab")

	updated, _ := m.Update(keyRunes("/"))
	m = updated.(DetailModel)
	require.True(t, m.Searching())

	for _, r := range "dopamine" {
		updated, _ = m.Update(keyRunes(string(r)))
		m = updated.(DetailModel)
	}
	assert.Equal(t, "dopamine", m.Query().Search)
	require.Len(t, m.Detail().Claims, 1)
	assert.Equal(t, 3, m.Detail().Claims[0].ID)

	// "q" types into the box instead of quitting.
	updated, _ = m.Update(keyRunes("q"))
	m = updated.(DetailModel)
	assert.NotEqual(t, ViewStateQuitting, m.State())

	updated, _ = m.Update(keyType(tea.KeyEsc))
	m = updated.(DetailModel)
	assert.False(t, m.Searching())
	assert.Empty(t, m.Query().Search)
	assert.Len(t, m.Detail().Claims, 3)
}

func TestDetailModel_ErrorAndRetry(t *testing.T) {
	var calls atomic.Int32
	r := influencerSource(func(_ context.Context, key string) (engine.Payload, error) {
		if calls.Add(1) == 1 {
			return engine.Payload{}, errors.New("upstream exploded")
		}
		p := fixtureInfluencer(t)
		p.Username = key
		return p, nil
	})

	m := openedDetail(t, r, "alice")
	require.Equal(t, ViewStateError, m.State())
	out := m.View()
	assert.Contains(t, out, "Error: upstream exploded")
	assert.NotContains(t, out, "Loading")
	assert.NotContains(t, out, msgNoData)

	updated, cmd := m.Update(keyRunes("r"))
	m = updated.(DetailModel)
	require.Equal(t, ViewStateLoading, m.State())

	updated, _ = m.Update(findMsg[InfluencerLoadedMsg](t, cmd))
	m = updated.(DetailModel)
	assert.Equal(t, ViewStateDetail, m.State())
	assert.Equal(t, "alice", m.Detail().Username)
}

func TestDetailModel_DiscardsStaleResult(t *testing.T) {
	r := influencerSource(func(_ context.Context, key string) (engine.Payload, error) {
		p := fixtureInfluencer(t)
		p.Username = key
		return p, nil
	})

	m := NewDetailModel(context.Background(), r)
	m, slowCmd := m.Open("alice")
	m, fastCmd := m.Open("bob")

	updated, _ := m.Update(findMsg[InfluencerLoadedMsg](t, fastCmd))
	m = updated.(DetailModel)
	require.Equal(t, "bob", m.Detail().Username)

	// The late response for alice must not replace bob.
	updated, _ = m.Update(findMsg[InfluencerLoadedMsg](t, slowCmd))
	m = updated.(DetailModel)
	assert.Equal(t, "bob", m.Detail().Username)
	assert.Equal(t, "bob", m.Username())
}

func TestDetailModel_SwitchCancelsPreviousRequest(t *testing.T) {
	started := make(chan struct{})
	r := influencerSource(func(ctx context.Context, key string) (engine.Payload, error) {
		if key == "alice" {
			close(started)
			<-ctx.Done()
			return engine.Payload{}, ctx.Err()
		}
		p := fixtureInfluencer(t)
		p.Username = key
		return p, nil
	})

	m := NewDetailModel(context.Background(), r)
	m, aliceCmd := m.Open("alice")

	aliceMsgs := make(chan InfluencerLoadedMsg, 1)
	go func() {
		for _, msg := range collect(aliceCmd) {
			if loaded, ok := msg.(InfluencerLoadedMsg); ok {
				aliceMsgs <- loaded
			}
		}
	}()
	<-started

	m, _ = m.Open("bob")
	stale := <-aliceMsgs
	require.ErrorIs(t, stale.Result.Err, context.Canceled)

	updated, _ := m.Update(stale)
	m = updated.(DetailModel)
	assert.Equal(t, ViewStateLoading, m.State(), "cancelled result for alice is ignored")
}

func TestDetailModel_DegradedBanner(t *testing.T) {
	r := influencerSource(
		func(context.Context, string) (engine.Payload, error) {
			return engine.Payload{}, &fetch.StatusError{Code: 429, URL: "http://x/api/influencer/alice"}
		},
		fetch.WithFixture[engine.Payload](func() (engine.Payload, error) { return fixtureInfluencer(t), nil }),
	)

	m := openedDetail(t, r, "alice")
	require.Equal(t, ViewStateDetail, m.State())
	assert.Contains(t, m.View(), msgDegraded)
}

func TestDetailModel_EmptyClaimsPlaceholder(t *testing.T) {
	r := influencerSource(func(_ context.Context, key string) (engine.Payload, error) {
		return engine.Payload{Username: key}, nil
	})

	m := openedDetail(t, r, "quiet")
	assert.Contains(t, m.View(), engine.ScorePlaceholder+" (based on 0 claims)")
	assert.NotContains(t, m.View(), "NaN")
}
