package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Help", km.Help, []string{"?"}},
		{"Back", km.Back, []string{"esc"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Select", km.Select, []string{"enter"}},
		{"Toggle", km.Toggle, []string{" ", "x"}},
		{"SelectAll", km.SelectAll, []string{"a"}},
		{"SelectNone", km.SelectNone, []string{"n"}},
		{"Preview", km.Preview, []string{"p"}},
		{"Export", km.Export, []string{"e"}},
		{"Open", km.Open, []string{"o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestLayersHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.LayersHelp()

	require.Len(t, bindings, 6)
	assert.Equal(t, km.Toggle, bindings[0])
	assert.Equal(t, km.Back, bindings[5])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	for _, group := range bindings {
		assert.Len(t, group, 3)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches(" ", km.Toggle))
	assert.True(t, Matches("k", km.Up))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
}
