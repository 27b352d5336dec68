package open

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/testenv"
)

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Empty(t, view.Path())
	assert.NotNil(t, view.Init())
}

func TestLoad_Success(t *testing.T) {
	env := testenv.New(t)
	path := env.WriteFile(t, "poster.psd", "ok")

	msg := Load(context.Background(), env.Session, path)()

	loaded, ok := msg.(messages.DocumentLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Equal(t, path, loaded.Path)
	assert.Equal(t, "poster.psd", env.Session.Document().Name)
}

func TestLoad_Errors(t *testing.T) {
	env := testenv.New(t)

	msg := Load(context.Background(), env.Session, filepath.Join(env.Dir, "missing.psd"))()
	assert.ErrorIs(t, msg.(messages.DocumentLoaded).Err, os.ErrNotExist)

	broken := env.WriteFile(t, "broken.psd", testenv.BrokenContent)
	msg = Load(context.Background(), env.Session, broken)()
	assert.ErrorIs(t, msg.(messages.DocumentLoaded).Err, domain.ErrDecodeFailure)

	msg = Load(context.Background(), nil, broken)()
	assert.Error(t, msg.(messages.DocumentLoaded).Err)
}

func TestView_EnterLoadsPath(t *testing.T) {
	env := testenv.New(t)
	path := env.WriteFile(t, "poster.psd", "ok")
	view := NewView(nil, env.Session)
	view.SetPath(path)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, view.Loading())
	assert.Contains(t, view.View(), "Loading...")

	msg := cmd()
	view.Update(msg)
	assert.False(t, view.Loading())
	assert.NoError(t, view.Err())
}

func TestView_EnterIgnoresEmptyPath(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, view.Loading())
}

func TestView_ShowsLoadError(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(messages.DocumentLoaded{Path: "x.psd", Err: domain.ErrUnsupportedInput})

	assert.Contains(t, view.View(), "Error: unsupported input")
	view.Reset()
	assert.NotContains(t, view.View(), "Error:")
}

func TestView_EscGoesToMenu(t *testing.T) {
	view := NewView(nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Typing(t *testing.T) {
	view := NewView(nil, nil)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.psd")})

	assert.Equal(t, "a.psd", view.Path())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "art/a.psd"), expandHome("~/art/a.psd"))
	assert.Equal(t, "/tmp/a.psd", expandHome("/tmp/a.psd"))
}
