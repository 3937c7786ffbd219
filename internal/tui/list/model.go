package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered around the viewport.
const defaultBufferSize = 2

// RenderFunc renders one item; selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a virtually scrolled list of T.
type Model[T any] struct {
	items      []T
	render     RenderFunc[T]
	selected   int
	from, to   int
	height     int
	bufferSize int
}

// New returns a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		render:     render,
		height:     max(height, 1),
		bufferSize: defaultBufferSize,
	}
	m.updateWindow()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd { return nil }

// Update moves the selection or resizes the viewport.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.Select(m.selected - 1)
	case "down", "j":
		m.Select(m.selected + 1)
	case "pgup":
		m.Select(m.selected - m.height)
	case "pgdown":
		m.Select(m.selected + m.height)
	case "home":
		m.Select(0)
	case "end":
		m.Select(len(m.items) - 1)
	}
}

// SetItems replaces the items and resets the selection to the first row.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.selected = 0
	m.updateWindow()
}

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.updateWindow()
}

// Select moves the selection to index, clamped to the list bounds.
func (m *Model[T]) Select(index int) {
	m.selected = max(0, min(index, len(m.items)-1))
	m.updateWindow()
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int { return m.selected }

// Len returns the number of items.
func (m *Model[T]) Len() int { return len(m.items) }

// Window returns the visible range [from, to).
func (m *Model[T]) Window() (int, int) { return m.from, m.to }

// SelectedItem returns the selected item, or false for an empty list.
func (m *Model[T]) SelectedItem() (T, bool) {
	var zero T
	if m.selected < 0 || m.selected >= len(m.items) {
		return zero, false
	}
	return m.items[m.selected], true
}

// updateWindow keeps the selection centred where the list allows it.
func (m *Model[T]) updateWindow() {
	n := len(m.items)
	if n == 0 {
		m.selected, m.from, m.to = 0, 0, 0
		return
	}
	m.from = max(0, m.selected-m.height/2)
	m.to = min(n, m.from+m.height)
	m.from = max(0, m.to-m.height)
}

// View renders the visible rows plus the scroll buffer.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	from := max(0, m.from-m.bufferSize)
	to := min(len(m.items), m.to+m.bufferSize)

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}
