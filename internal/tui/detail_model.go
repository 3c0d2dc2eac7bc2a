package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/logging"
	"github.com/rshade/trustboard/internal/tui/detail"
	listview "github.com/rshade/trustboard/internal/tui/list"
)

// claimCardHeight is the number of lines a rendered claim card takes.
const claimCardHeight = 5

// DetailModel is the Bubble Tea model for a single influencer's claims.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type DetailModel struct {
	state    ViewState
	ctx      context.Context
	resolver Resolver[engine.Payload]
	tracker  *detail.Tracker

	username string
	payload  *engine.Payload
	degraded bool
	query    engine.ClaimQuery
	view     engine.InfluencerDetail

	claims    listview.Model[engine.Claim]
	search    textinput.Model
	searching bool

	help         help.Model
	width        int
	height       int
	loadingState *LoadingState
	err          error
}

// NewDetailModel creates an empty detail view. Call Open to show an
// influencer.
func NewDetailModel(ctx context.Context, r Resolver[engine.Payload]) DetailModel {
	m := DetailModel{
		state:        ViewStateDetail,
		ctx:          ctx,
		resolver:     r,
		tracker:      &detail.Tracker{},
		query:        defaultClaimQuery(),
		search:       newTextInput(),
		help:         help.New(),
		width:        defaultWidth,
		height:       defaultHeight,
		loadingState: NewLoadingState(),
	}
	m.claims = listview.New[engine.Claim](nil, m.claimWindow(), renderClaimCard)
	return m
}

func defaultClaimQuery() engine.ClaimQuery {
	return engine.ClaimQuery{Category: engine.AllCategories, Status: engine.AllStatuses}
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search claims..."
	ti.CharLimit = 100 //nolint:mnd // Reasonable search length.
	ti.Width = 40      //nolint:mnd // Input box width.
	return ti
}

// Open shows username. A cached payload is displayed at once; otherwise a
// new load starts and any load still in flight is cancelled.
func (m DetailModel) Open(username string) (DetailModel, tea.Cmd) {
	if username == m.username && m.payload != nil && m.state == ViewStateDetail {
		return m, nil
	}

	m.username = username
	m.query = defaultClaimQuery()
	m.search.SetValue("")
	m.searching = false

	if res := m.resolver.Peek(username); res.Ready() {
		m.tracker.Cancel()
		m.applyResult(res.Data, res.Degraded(), nil)
		return m, nil
	}
	return m.startLoad()
}

// startLoad begins a fresh request for the current username.
func (m DetailModel) startLoad() (DetailModel, tea.Cmd) {
	req, ctx := m.tracker.Begin(m.ctx, m.username)
	m.state = ViewStateLoading
	m.payload = nil
	m.err = nil

	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Str("username", req.Key).
		Uint64("request_id", req.ID).
		Msg("loading influencer")

	return m, tea.Batch(m.loadingState.Init(), loadInfluencerCmd(ctx, m.resolver, req))
}

// Init returns nil; loads start from Open (Bubble Tea interface).
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.claims.SetWindow(m.claimWindow())
		return m, nil
	case InfluencerLoadedMsg:
		return m.handleLoaded(msg)
	case spinner.TickMsg:
		if m.state == ViewStateLoading {
			return m, m.loadingState.Update(msg)
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchInput(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.handleKey(keyMsg)
}

func (m DetailModel) handleLoaded(msg InfluencerLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Accept(msg.Request) {
		logging.FromContext(m.ctx).Debug().
			Str("component", "tui").
			Str("username", msg.Request.Key).
			Uint64("request_id", msg.Request.ID).
			Msg("discarding stale influencer result")
		return m, nil
	}

	res := msg.Result
	if res.Err != nil {
		logging.FromContext(m.ctx).Warn().
			Str("component", "tui").
			Str("username", msg.Request.Key).
			Err(res.Err).
			Msg("influencer load failed")
	}
	m.applyResult(res.Data, res.Degraded(), res.Err)
	return m, nil
}

// applyResult moves the model to the detail or error state.
func (m *DetailModel) applyResult(payload *engine.Payload, degraded bool, err error) {
	if err != nil || payload == nil {
		m.state = ViewStateError
		m.err = err
		if m.err == nil {
			m.err = errEmptyResponse
		}
		m.payload = nil
		return
	}
	m.state = ViewStateDetail
	m.err = nil
	m.payload = payload
	m.degraded = degraded
	m.refresh()
}

// refresh recomputes the derived view and the claim list.
func (m *DetailModel) refresh() {
	if m.payload == nil {
		return
	}
	m.view = engine.BuildInfluencerDetail(m.payload, m.query)
	m.view.Degraded = m.degraded
	m.claims.SetItems(m.view.Claims)
}

func (m DetailModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		case keyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.query.Search = ""
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.query.Search != m.search.Value() {
		m.query.Search = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

func (m DetailModel) handleKey(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.tracker.Cancel()
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyQuestion:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case ViewStateLoading:
		if keyMsg.String() == keyEsc {
			m.tracker.Cancel()
			m.username = ""
			m.state = ViewStateDetail
			return m, backCmd
		}
		return m, nil
	case ViewStateError:
		switch keyMsg.String() {
		case keyR:
			return m.startLoad()
		case keyEsc:
			return m, backCmd
		}
		return m, nil
	case ViewStateDetail:
		return m.handleDetailKeypress(keyMsg)
	case ViewStateList, ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m DetailModel) handleDetailKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.payload == nil {
		if keyMsg.String() == keyEsc {
			return m, backCmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case keyC:
		m.query.Category = nextOption(m.view.Categories, m.query.Category)
		m.refresh()
		return m, nil
	case keyS:
		m.query.Status = nextOption(engine.StatusOptions(), m.query.Status)
		m.refresh()
		return m, nil
	case keySlash:
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.filtered() {
			m.query = defaultClaimQuery()
			m.search.SetValue("")
			m.refresh()
			return m, nil
		}
		return m, backCmd
	default:
		var cmd tea.Cmd
		m.claims, cmd = m.claims.Update(keyMsg)
		return m, cmd
	}
}

// filtered reports whether any claim filter differs from its default.
func (m DetailModel) filtered() bool {
	return m.query != defaultClaimQuery()
}

// nextOption returns the option after current, wrapping around.
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m DetailModel) claimWindow() int {
	window := (m.height - 2*summaryHeight) / claimCardHeight
	if window < 1 {
		return 1
	}
	return window
}

// State returns the current view state.
func (m DetailModel) State() ViewState {
	return m.state
}

// Username returns the influencer being shown or loaded.
func (m DetailModel) Username() string {
	return m.username
}

// Searching reports whether the search box has focus.
func (m DetailModel) Searching() bool {
	return m.searching
}

// Detail returns the derived detail view currently displayed.
func (m DetailModel) Detail() engine.InfluencerDetail {
	return m.view
}

// Query returns the active claim filters.
func (m DetailModel) Query() engine.ClaimQuery {
	return m.query
}
