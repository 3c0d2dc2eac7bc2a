package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// leaderboardKeys holds the help bar bindings of the leaderboard.
type leaderboardKeys struct {
	Up       key.Binding
	Down     key.Binding
	Category key.Binding
	Previous key.Binding
	Order    key.Binding
	Open     key.Binding
	Tab      key.Binding
	Quit     key.Binding
}

// ShortHelp returns the leaderboard bindings for the help bar.
func (k leaderboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Category, k.Order, k.Open, k.Tab, k.Quit}
}

// FullHelp returns the leaderboard bindings grouped for expanded help.
func (k leaderboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Category, k.Previous, k.Order},
		{k.Tab, k.Quit},
	}
}

// detailKeys holds the help bar bindings of the detail view.
type detailKeys struct {
	Up       key.Binding
	Down     key.Binding
	Category key.Binding
	Status   key.Binding
	Search   key.Binding
	Back     key.Binding
	Retry    key.Binding
	Tab      key.Binding
	Quit     key.Binding
}

// ShortHelp returns the detail bindings for the help bar.
func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Category, k.Status, k.Search, k.Back, k.Retry, k.Quit}
}

// FullHelp returns the detail bindings grouped for expanded help.
func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Category, k.Status, k.Search},
		{k.Back, k.Retry, k.Tab, k.Quit},
	}
}

func quitBinding() key.Binding {
	return key.NewBinding(key.WithKeys(keyQuit, keyCtrlC), key.WithHelp(keyQuit, "quit"))
}

func tabBinding() key.Binding {
	return key.NewBinding(key.WithKeys(keyTab), key.WithHelp(keyTab, "switch view"))
}

// LeaderboardKeyMap returns the leaderboard bindings.
func LeaderboardKeyMap() help.KeyMap {
	return leaderboardKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Category: key.NewBinding(key.WithKeys(keyC), key.WithHelp(keyC, "next category")),
		Previous: key.NewBinding(key.WithKeys(keyShiftC), key.WithHelp(keyShiftC, "prev category")),
		Order:    key.NewBinding(key.WithKeys(keyO), key.WithHelp(keyO, "toggle order")),
		Open:     key.NewBinding(key.WithKeys(keyEnter), key.WithHelp(keyEnter, "open")),
		Tab:      tabBinding(),
		Quit:     quitBinding(),
	}
}

// DetailKeyMap returns the detail view bindings.
func DetailKeyMap() help.KeyMap {
	return detailKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Category: key.NewBinding(key.WithKeys(keyC), key.WithHelp(keyC, "category")),
		Status:   key.NewBinding(key.WithKeys(keyS), key.WithHelp(keyS, "status")),
		Search:   key.NewBinding(key.WithKeys(keySlash), key.WithHelp(keySlash, "search")),
		Back:     key.NewBinding(key.WithKeys(keyEsc), key.WithHelp(keyEsc, "clear/back")),
		Retry:    key.NewBinding(key.WithKeys(keyR), key.WithHelp(keyR, "retry")),
		Tab:      tabBinding(),
		Quit:     quitBinding(),
	}
}
