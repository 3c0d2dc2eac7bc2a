package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/trustboard/internal/engine"
)

// Pane identifies the view hosted by AppModel.
type Pane int

// Panes.
const (
	PaneLeaderboard Pane = iota
	PaneDetail
)

// AppModel hosts the leaderboard and the detail view and switches between
// them with tab.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type AppModel struct {
	active      Pane
	leaderboard LeaderboardModel
	detail      DetailModel
	initial     string
	quitting    bool
}

// AppOption configures an AppModel.
type AppOption func(*AppModel)

// WithInitialInfluencer opens the detail view for username on start.
func WithInitialInfluencer(username string) AppOption {
	return func(m *AppModel) {
		m.initial = username
	}
}

// NewAppModel creates the dashboard.
func NewAppModel(
	ctx context.Context,
	leaderboards Resolver[engine.Leaderboard],
	influencers Resolver[engine.Payload],
	opts ...AppOption,
) AppModel {
	m := AppModel{
		active:      PaneLeaderboard,
		leaderboard: NewLeaderboardModel(ctx, leaderboards),
		detail:      NewDetailModel(ctx, influencers),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the leaderboard load and the initial detail load, if any
// (Bubble Tea interface).
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.leaderboard.Init()}
	if m.initial != "" {
		cmds = append(cmds, openInfluencerCmd(m.initial))
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the hosted models (Bubble Tea interface).
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		child := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2} //nolint:mnd // Tab bar lines.
		lb, _ := m.leaderboard.Update(child)
		m.leaderboard = lb.(LeaderboardModel)
		d, _ := m.detail.Update(child)
		m.detail = d.(DetailModel)
		return m, nil
	case OpenInfluencerMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Open(msg.Username)
		m.active = PaneDetail
		return m, cmd
	case BackMsg:
		m.active = PaneLeaderboard
		return m, nil
	case LeaderboardLoadedMsg:
		return m.updateLeaderboard(msg)
	case InfluencerLoadedMsg:
		return m.updateDetail(msg)
	case spinner.TickMsg:
		return m.updateSpinners(msg)
	case tea.KeyMsg:
		if msg.String() == keyTab && !m.detail.Searching() {
			m.active = 1 - m.active
			return m, nil
		}
	}

	if m.active == PaneDetail {
		return m.updateDetail(msg)
	}
	return m.updateLeaderboard(msg)
}

func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.leaderboard.Update(msg)
	m.leaderboard = updated.(LeaderboardModel)
	if m.leaderboard.State() == ViewStateQuitting {
		m.quitting = true
	}
	return m, cmd
}

func (m AppModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.detail.Update(msg)
	m.detail = updated.(DetailModel)
	if m.detail.State() == ViewStateQuitting {
		m.quitting = true
	}
	return m, cmd
}

// updateSpinners forwards a tick to both models; each spinner ignores ticks
// that are not its own.
func (m AppModel) updateSpinners(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	lb, lbCmd := m.leaderboard.Update(msg)
	m.leaderboard = lb.(LeaderboardModel)
	d, dCmd := m.detail.Update(msg)
	m.detail = d.(DetailModel)
	return m, tea.Batch(lbCmd, dCmd)
}

// View renders the tab bar and the active pane (Bubble Tea interface).
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	var body string
	if m.active == PaneDetail {
		body = m.detail.View()
	} else {
		body = m.leaderboard.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body)
}

func (m AppModel) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return HeaderStyle.Underline(true).Render(label)
		}
		return SubtleStyle.Render(label)
	}
	detailLabel := "Influencer"
	if u := m.detail.Username(); u != "" {
		detailLabel += ": " + u
	}
	return tab("Leaderboard", m.active == PaneLeaderboard) + "   " +
		tab(detailLabel, m.active == PaneDetail) + "\n"
}

// Active returns the pane in front.
func (m AppModel) Active() Pane {
	return m.active
}

// Leaderboard returns the hosted leaderboard model.
func (m AppModel) Leaderboard() LeaderboardModel {
	return m.leaderboard
}

// Detail returns the hosted detail model.
func (m AppModel) Detail() DetailModel {
	return m.detail
}
