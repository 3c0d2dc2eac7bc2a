package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/tui/detail"
)

// errEmptyResponse is shown when a load reports neither data nor an error.
var errEmptyResponse = errors.New("empty response")

// Resolver is the part of fetch.Resolver the dashboard needs.
type Resolver[T any] interface {
	Peek(key string) fetch.Result[T]
	Resolve(ctx context.Context, key string) fetch.Result[T]
}

// LeaderboardLoadedMsg carries the outcome of a leaderboard load.
type LeaderboardLoadedMsg struct {
	Result fetch.Result[engine.Leaderboard]
}

// InfluencerLoadedMsg carries the outcome of a detail load. Request is
// matched against the detail model's current request.
type InfluencerLoadedMsg struct {
	Request detail.Request
	Result  fetch.Result[engine.Payload]
}

// OpenInfluencerMsg asks the app to show the detail view for Username.
type OpenInfluencerMsg struct {
	Username string
}

// BackMsg asks the app to return to the leaderboard.
type BackMsg struct{}

func loadLeaderboardCmd(ctx context.Context, r Resolver[engine.Leaderboard]) tea.Cmd {
	return func() tea.Msg {
		return LeaderboardLoadedMsg{Result: r.Resolve(ctx, fetch.LeaderboardKey)}
	}
}

func loadInfluencerCmd(ctx context.Context, r Resolver[engine.Payload], req detail.Request) tea.Cmd {
	return func() tea.Msg {
		return InfluencerLoadedMsg{Request: req, Result: r.Resolve(ctx, req.Key)}
	}
}

func openInfluencerCmd(username string) tea.Cmd {
	return func() tea.Msg {
		return OpenInfluencerMsg{Username: username}
	}
}

func backCmd() tea.Msg {
	return BackMsg{}
}
