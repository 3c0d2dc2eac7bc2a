// Package tui implements the interactive trustboard dashboard: a
// leaderboard table and an influencer detail view hosted by AppModel.
package tui

// ViewState is the display state of a model.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateError
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Key strings matched in Update.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyTab      = "tab"
	keyC        = "c"
	keyShiftC   = "C"
	keyO        = "o"
	keyS        = "s"
	keyR        = "r"
	keyQuestion = "?"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
	borderPadding = 2
	summaryHeight = 8
	minHeight     = 5
)

// Placeholder texts.
const (
	msgLoading   = "Loading..."
	msgNoData    = "No data available"
	msgDegraded  = "Live data unavailable, showing sample data"
	msgNoMatches = "No claims match the current filters"
)
