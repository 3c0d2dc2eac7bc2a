package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected marks the highlighted item.
type RenderFunc[T any] func(item T, selected bool) string

// KeyMap holds the navigation bindings of a list.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow, vim and paging bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	}
}

// Model is a scrolling list window. The zero value is an empty list.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]
	keys   KeyMap

	selected int
	offset   int

	// window is the number of items shown at once.
	window int
}

// New creates a list showing window items at a time.
func New[T any](items []T, window int, render RenderFunc[T]) Model[T] {
	if window < 1 {
		window = 1
	}
	m := Model[T]{
		items:  items,
		render: render,
		keys:   DefaultKeyMap(),
		window: window,
	}
	m.clamp()
	return m
}

// SetItems replaces the items and resets the selection to the first one.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.offset = 0
	m.clamp()
}

// SetWindow changes the number of visible items.
func (m *Model[T]) SetWindow(window int) {
	if window < 1 {
		window = 1
	}
	m.window = window
	m.clamp()
}

// Update moves the selection for navigation keys and ignores everything else.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.selected--
	case key.Matches(keyMsg, m.keys.Down):
		m.selected++
	case key.Matches(keyMsg, m.keys.PageUp):
		m.selected -= m.window
	case key.Matches(keyMsg, m.keys.PageDown):
		m.selected += m.window
	case key.Matches(keyMsg, m.keys.Home):
		m.selected = 0
	case key.Matches(keyMsg, m.keys.End):
		m.selected = len(m.items) - 1
	default:
		return m, nil
	}
	m.clamp()
	return m, nil
}

// clamp bounds the selection and scrolls the window so it stays visible.
func (m *Model[T]) clamp() {
	if len(m.items) == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = max(0, min(m.selected, len(m.items)-1))

	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.window {
		m.offset = m.selected - m.window + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-m.window))
}

// View renders the items inside the window, separated by newlines.
func (m Model[T]) View() string {
	if len(m.items) == 0 || m.render == nil {
		return ""
	}
	from, to := m.Visible()
	rows := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		rows = append(rows, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(rows, "\n")
}

// Visible returns the window as a half-open index range.
func (m Model[T]) Visible() (from, to int) {
	return m.offset, min(m.offset+m.window, len(m.items))
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m Model[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the selected item, or nil for an empty list.
func (m Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}

// KeyMap returns the navigation bindings for help rendering.
func (m Model[T]) KeyMap() KeyMap {
	return m.keys
}
