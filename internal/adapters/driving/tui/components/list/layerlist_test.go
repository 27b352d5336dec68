package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func sampleEntries() []domain.FlatEntry {
	return []domain.FlatEntry{
		{DisplayName: "Overlay", Ordinal: 1, Source: &domain.LayerNode{Name: "Overlay"}},
		{DisplayName: "Characters", IsGroup: true},
		{DisplayName: "Hero", Depth: 1, Ordinal: 2, Source: &domain.LayerNode{Name: "Hero"}},
		{DisplayName: "Shadow", Depth: 1, Ordinal: 3, Source: &domain.LayerNode{Name: "Shadow", Hidden: true}},
		{DisplayName: "Background", Ordinal: 4, Source: &domain.LayerNode{Name: "Background"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewLayerList(t *testing.T) {
	l := NewLayerList(nil)

	require.NotNil(t, l)
	assert.Nil(t, l.Init())
	assert.Equal(t, 0, l.Cursor())
	_, ok := l.Current()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "No layers.")
}

func TestLayerList_Navigation(t *testing.T) {
	l := NewLayerList(nil)
	l.SetEntries(sampleEntries())

	l, _ = l.Update(key("up"))
	assert.Equal(t, 0, l.Cursor())

	l, _ = l.Update(key("j"))
	l, _ = l.Update(key("down"))
	assert.Equal(t, 2, l.Cursor())

	l, _ = l.Update(key("k"))
	assert.Equal(t, 1, l.Cursor())

	l, _ = l.Update(key("end"))
	assert.Equal(t, 4, l.Cursor())
	l, _ = l.Update(key("down"))
	assert.Equal(t, 4, l.Cursor())

	l, _ = l.Update(key("home"))
	assert.Equal(t, 0, l.Cursor())
}

func TestLayerList_ScrollsWithCursor(t *testing.T) {
	l := NewLayerList(nil)
	l.SetEntries(sampleEntries())
	l.SetDimensions(80, 2)

	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 1, l.Offset())

	view := l.View()
	assert.Len(t, strings.Split(view, "\n"), 2)
	assert.Contains(t, view, "Characters")
	assert.Contains(t, view, "Hero")
	assert.NotContains(t, view, "Overlay")

	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Offset())
}

func TestLayerList_ViewRows(t *testing.T) {
	l := NewLayerList(nil)
	l.SetEntries(sampleEntries())
	l.SetChecked([]int{2})

	view := l.View()

	assert.Contains(t, view, "> [ ] 001 Overlay")
	assert.Contains(t, view, "▸ Characters")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "Shadow")
	assert.Contains(t, view, "(hidden)")
	assert.True(t, l.Checked(2))
	assert.False(t, l.Checked(0))
}

func TestLayerList_SetEntriesResets(t *testing.T) {
	l := NewLayerList(nil)
	l.SetEntries(sampleEntries())
	l.SetChecked([]int{0, 4})
	l.MoveDown()

	l.SetEntries(sampleEntries()[:2])

	assert.Equal(t, 0, l.Cursor())
	assert.False(t, l.Checked(0))
	assert.Len(t, l.Entries(), 2)
}

func TestLayerList_Current(t *testing.T) {
	l := NewLayerList(nil)
	l.SetEntries(sampleEntries())
	l.MoveDown()

	e, ok := l.Current()

	require.True(t, ok)
	assert.True(t, e.IsGroup)
}
