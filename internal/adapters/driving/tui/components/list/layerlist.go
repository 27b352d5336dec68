// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// LayerList displays a flattened layer list with check marks for
// selected layers and a movable cursor.
type LayerList struct {
	entries []domain.FlatEntry
	checked map[int]bool
	cursor  int
	offset  int
	styles  *styles.Styles
	width   int
	height  int
}

// NewLayerList creates a new layer list component.
func NewLayerList(s *styles.Styles) *LayerList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &LayerList{
		checked: make(map[int]bool),
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the layer list.
func (l *LayerList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *LayerList) Update(msg tea.Msg) (*LayerList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "pgup":
			l.move(-l.height)
		case "pgdown":
			l.move(l.height)
		case "home", "g":
			l.move(-len(l.entries))
		case "end", "G":
			l.move(len(l.entries))
		}
	}
	return l, nil
}

// View renders the visible rows.
func (l *LayerList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No layers.")
	}

	end := min(l.offset+l.height, len(l.entries))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(i))
	}
	return strings.Join(rows, "\n")
}

func (l *LayerList) renderRow(i int) string {
	e := l.entries[i]
	indent := strings.Repeat("  ", e.Depth)

	cursor := "  "
	if i == l.cursor {
		cursor = "> "
	}

	if e.IsGroup {
		line := fmt.Sprintf("%s    %s▸ %s", cursor, indent, e.DisplayName)
		if i == l.cursor {
			return l.styles.Selected.Render(line)
		}
		return l.styles.Group.Render(line)
	}

	mark := "[ ]"
	if l.checked[i] {
		mark = "[x]"
	}

	var suffix string
	if e.Source != nil && e.Source.Hidden {
		suffix = " (hidden)"
	}

	if i == l.cursor {
		return l.styles.Selected.Render(fmt.Sprintf("%s%s %s%s %s%s",
			cursor, mark, indent, e.OrdinalLabel(), e.DisplayName, suffix))
	}

	markStyle := l.styles.Muted
	if l.checked[i] {
		markStyle = l.styles.Checked
	}
	return cursor + markStyle.Render(mark) + " " + indent +
		l.styles.Ordinal.Render(e.OrdinalLabel()) + " " +
		l.styles.Normal.Render(e.DisplayName) +
		l.styles.Muted.Render(suffix)
}

// SetEntries replaces the list and resets the cursor and check marks.
func (l *LayerList) SetEntries(entries []domain.FlatEntry) {
	l.entries = entries
	l.checked = make(map[int]bool)
	l.cursor = 0
	l.offset = 0
}

// Entries returns the current entries.
func (l *LayerList) Entries() []domain.FlatEntry {
	return l.entries
}

// SetChecked marks exactly the given indices as selected.
func (l *LayerList) SetChecked(indices []int) {
	l.checked = make(map[int]bool, len(indices))
	for _, i := range indices {
		l.checked[i] = true
	}
}

// Checked reports whether entry i is marked as selected.
func (l *LayerList) Checked(i int) bool {
	return l.checked[i]
}

// MoveUp moves the cursor up one row.
func (l *LayerList) MoveUp() {
	l.move(-1)
}

// MoveDown moves the cursor down one row.
func (l *LayerList) MoveDown() {
	l.move(1)
}

func (l *LayerList) move(delta int) {
	if len(l.entries) == 0 {
		return
	}
	l.cursor = max(0, min(len(l.entries)-1, l.cursor+delta))
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// Cursor returns the index of the row under the cursor.
func (l *LayerList) Cursor() int {
	return l.cursor
}

// Current returns the entry under the cursor.
func (l *LayerList) Current() (domain.FlatEntry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return domain.FlatEntry{}, false
	}
	return l.entries[l.cursor], true
}

// SetDimensions sets the list size. Height is the number of visible rows.
func (l *LayerList) SetDimensions(width, height int) {
	l.width = width
	l.height = max(1, height)
	l.move(0)
}

// Height returns the number of visible rows.
func (l *LayerList) Height() int {
	return l.height
}

// Offset returns the index of the first visible row.
func (l *LayerList) Offset() int {
	return l.offset
}
