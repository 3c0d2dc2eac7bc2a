package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
	"github.com/rshade/trustboard/internal/logging"
)

// LeaderboardModel is the Bubble Tea model for the leaderboard table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type LeaderboardModel struct {
	state    ViewState
	ctx      context.Context
	resolver Resolver[engine.Leaderboard]

	board    *engine.Leaderboard
	degraded bool
	query    engine.LeaderboardQuery
	view     engine.LeaderboardView

	table        table.Model
	help         help.Model
	width        int
	height       int
	loadingState *LoadingState
	err          error
}

// NewLeaderboardModel creates the leaderboard model. A cached leaderboard
// is shown at once, otherwise the model starts loading on Init.
func NewLeaderboardModel(ctx context.Context, r Resolver[engine.Leaderboard]) LeaderboardModel {
	m := LeaderboardModel{
		state:        ViewStateLoading,
		ctx:          ctx,
		resolver:     r,
		query:        engine.LeaderboardQuery{Category: engine.AllCategory, Order: engine.SortDesc},
		help:         help.New(),
		width:        defaultWidth,
		height:       defaultHeight,
		loadingState: NewLoadingState(),
	}

	m.table = m.buildTable()
	if res := r.Peek(fetch.LeaderboardKey); res.Ready() {
		m.applyResult(res.Data, res.Degraded(), nil)
	}
	return m
}

// Init starts the initial load when nothing was cached (Bubble Tea interface).
func (m LeaderboardModel) Init() tea.Cmd {
	if m.state != ViewStateLoading {
		return nil
	}
	return tea.Batch(m.loadingState.Init(), loadLeaderboardCmd(m.ctx, m.resolver))
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	case LeaderboardLoadedMsg:
		return m.handleLoaded(msg)
	case spinner.TickMsg:
		if m.state == ViewStateLoading {
			return m, m.loadingState.Update(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m LeaderboardModel) handleLoaded(msg LeaderboardLoadedMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	if res.Err != nil {
		logging.FromContext(m.ctx).Warn().
			Str("component", "tui").
			Err(res.Err).
			Msg("leaderboard load failed")
	}
	m.applyResult(res.Data, res.Degraded(), res.Err)
	m.table = m.buildTable()
	return m, nil
}

// applyResult moves the model to the list or error state.
func (m *LeaderboardModel) applyResult(board *engine.Leaderboard, degraded bool, err error) {
	if err != nil || board == nil {
		m.state = ViewStateError
		m.err = err
		if m.err == nil {
			m.err = errEmptyResponse
		}
		m.board = nil
		return
	}
	m.state = ViewStateList
	m.err = nil
	m.board = board
	m.degraded = degraded
	m.refresh()
}

func (m LeaderboardModel) handleKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyQuestion:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case ViewStateError:
		if keyMsg.String() == keyR {
			m.state = ViewStateLoading
			m.err = nil
			return m, tea.Batch(m.loadingState.Init(), loadLeaderboardCmd(m.ctx, m.resolver))
		}
		return m, nil
	case ViewStateList:
		return m.handleListKeypress(keyMsg)
	case ViewStateLoading, ViewStateDetail, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m LeaderboardModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyC:
		m.cycleCategory(1)
		return m, nil
	case keyShiftC:
		m.cycleCategory(-1)
		return m, nil
	case keyO:
		m.query.Order = m.query.Order.Toggle()
		m.refresh()
		return m, nil
	case keyEnter:
		inf := m.SelectedInfluencer()
		if inf == nil {
			return m, nil
		}
		return m, openInfluencerCmd(influencerKey(*inf))
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

// influencerKey is the detail key of a leaderboard row.
func influencerKey(inf engine.Influencer) string {
	if inf.Handle != "" {
		return inf.Handle
	}
	return inf.Name
}

// cycleCategory moves the category filter by step, wrapping around.
func (m *LeaderboardModel) cycleCategory(step int) {
	categories := m.view.Categories
	if len(categories) == 0 {
		return
	}
	idx := 0
	for i, c := range categories {
		if c == m.query.Category {
			idx = i
			break
		}
	}
	idx = (idx + step + len(categories)) % len(categories)
	m.query.Category = categories[idx]
	m.refresh()
}

// refresh recomputes the derived view and the table rows.
func (m *LeaderboardModel) refresh() {
	if m.board == nil {
		return
	}
	m.view = engine.ApplyLeaderboardView(*m.board, m.query)
	m.view.Degraded = m.degraded
	m.table.SetRows(m.tableRows())
	m.table.SetCursor(0)
}

func (m *LeaderboardModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},         //nolint:mnd // Column width.
		{Title: "Influencer", Width: 24},  //nolint:mnd // Column width.
		{Title: "Category", Width: 14},    //nolint:mnd // Column width.
		{Title: "Trust Score", Width: 11}, //nolint:mnd // Column width.
		{Title: "Trend", Width: 5},        //nolint:mnd // Column width.
		{Title: "Followers", Width: 10},   //nolint:mnd // Column width.
		{Title: "Verified", Width: 9},     //nolint:mnd // Column width.
	}

	height := m.height - summaryHeight
	if height < minHeight {
		height = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.tableRows()),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

func (m *LeaderboardModel) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.view.Influencers))
	for _, inf := range m.view.Influencers {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", inf.Rank),
			inf.Name,
			inf.Category,
			fmt.Sprintf("%d%%", inf.TrustScore),
			inf.Trend.Arrow(),
			inf.Followers,
			engine.FormatCount(int64(inf.Claims)),
		})
	}
	return rows
}

// SelectedInfluencer returns the row under the cursor, or nil.
func (m LeaderboardModel) SelectedInfluencer() *engine.Influencer {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.view.Influencers) {
		return nil
	}
	inf := m.view.Influencers[cursor]
	return &inf
}

// State returns the current view state.
func (m LeaderboardModel) State() ViewState {
	return m.state
}

// LeaderboardView returns the derived leaderboard currently displayed.
func (m LeaderboardModel) LeaderboardView() engine.LeaderboardView {
	return m.view
}
