package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rshade/trustboard/internal/cache"
	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/fixtures"
)

func fixtureLeaderboard(t *testing.T) engine.Leaderboard {
	t.Helper()
	lb, err := fixtures.Default("").Leaderboard()
	require.NoError(t, err)
	return lb
}

func fixtureInfluencer(t *testing.T) engine.Payload {
	t.Helper()
	p, err := fixtures.Default("").Influencer()
	require.NoError(t, err)
	return p
}

func mockLeaderboards() *fetch.Resolver[engine.Leaderboard] {
	set := fixtures.Default("")
	return fetch.NewResolver[engine.Leaderboard]("leaderboard",
		fetch.NewFixtureSource(set.Leaderboard), cache.NewStore[engine.Leaderboard]())
}

func mockInfluencers() *fetch.Resolver[engine.Payload] {
	set := fixtures.Default("")
	return fetch.NewResolver[engine.Payload]("influencer",
		fetch.NewFixtureSource(set.Influencer), cache.NewStore[engine.Payload]())
}

// influencerSource returns a resolver whose source calls fn.
func influencerSource(
	fn func(ctx context.Context, key string) (engine.Payload, error),
	opts ...fetch.Option[engine.Payload],
) *fetch.Resolver[engine.Payload] {
	return fetch.NewResolver[engine.Payload]("influencer",
		fetch.SourceFunc[engine.Payload](fn), cache.NewStore[engine.Payload](), opts...)
}

// collect runs cmd and every command nested in batches, and returns the
// resulting messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type M produced by cmd.
func findMsg[M tea.Msg](t *testing.T, cmd tea.Cmd) M {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(M); ok {
			return m
		}
	}
	var zero M
	t.Fatalf("no %T produced", zero)
	return zero
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
