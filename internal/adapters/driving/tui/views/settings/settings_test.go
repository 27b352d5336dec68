package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// MockSettingsService records SetValue and Reset calls.
type MockSettingsService struct {
	settings *domain.Settings
	getErr   error
	setErr   error

	setKey   string
	setRaw   string
	resetKey string
}

func newMock() *MockSettingsService {
	s := domain.DefaultSettings()
	return &MockSettingsService{settings: &s}
}

func (m *MockSettingsService) Get() (*domain.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.settings, nil
}

func (m *MockSettingsService) Save(settings *domain.Settings) error {
	m.settings = settings
	return nil
}

func (m *MockSettingsService) SetOutputDir(dir string) error {
	m.settings.Export.OutputDir = dir
	return nil
}

func (m *MockSettingsService) SetFormat(format string) error {
	m.settings.Export.Format = format
	return nil
}

func (m *MockSettingsService) SetValue(key, raw string) error {
	m.setKey = key
	m.setRaw = raw
	return m.setErr
}

func (m *MockSettingsService) Reset(key string) error {
	m.resetKey = key
	return nil
}

func (m *MockSettingsService) Validate() error {
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, mock *MockSettingsService) *View {
	t.Helper()
	view := NewView(nil, mock)
	view.SetDimensions(100, 30)
	view.Update(view.Init()())
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.Contains(t, view.View(), "Loading settings...")
	assert.Equal(t, domain.SettingOutputDir, view.Selected())
}

func TestView_Init_NoService(t *testing.T) {
	view := NewView(nil, nil)

	msg := view.Init()()

	loadedMsg, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Error(t, loadedMsg.Err)
}

func TestView_Init_LoadError(t *testing.T) {
	mock := newMock()
	mock.getErr = errors.New("config unreadable")

	view := loaded(t, mock)

	assert.Contains(t, view.View(), "Error: config unreadable")
}

func TestView_ListsSettings(t *testing.T) {
	view := loaded(t, newMock())

	out := view.View()

	assert.Contains(t, out, "Output directory")
	assert.Contains(t, out, "Image format")
	assert.Contains(t, out, "png")
	assert.Contains(t, out, "Preview max size")
	assert.Contains(t, out, "512")
}

func TestView_Navigation(t *testing.T) {
	view := loaded(t, newMock())

	view.Update(runes("j"))
	assert.Equal(t, domain.SettingFormat, view.Selected())

	view.Update(runes("k"))
	view.Update(runes("k"))
	assert.Equal(t, domain.SettingOutputDir, view.Selected())

	for range 10 {
		view.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, domain.SettingHistoryEnabled, view.Selected())
}

func TestView_EditAndSave(t *testing.T) {
	mock := newMock()
	view := loaded(t, mock)
	view.Update(runes("j"))

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, view.Editing())
	assert.Equal(t, "png", view.field.Value())

	view.field.SetValue(" tiff ")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, view.Editing())

	msg := cmd()
	assert.Equal(t, messages.SettingsSaved{Key: domain.SettingFormat}, msg)
	assert.Equal(t, domain.SettingFormat, mock.setKey)
	assert.Equal(t, "tiff", mock.setRaw)

	_, reload := view.Update(msg)
	assert.NotNil(t, reload)
	assert.Contains(t, view.View(), "export.format saved")
}

func TestView_EditCancelled(t *testing.T) {
	mock := newMock()
	view := loaded(t, mock)

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, view.Editing())
	assert.Empty(t, mock.setKey)
}

func TestView_SaveErrorIsShown(t *testing.T) {
	mock := newMock()
	mock.setErr = domain.ErrInvalidInput
	view := loaded(t, mock)

	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view.Update(cmd())

	assert.Contains(t, view.View(), "Error: invalid input")
}

func TestView_ResetKey(t *testing.T) {
	mock := newMock()
	view := loaded(t, mock)
	view.Update(runes("j"))

	_, cmd := view.Update(runes("r"))

	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.SettingFormat, mock.resetKey)
}

func TestView_EscapeReturnsToMenu(t *testing.T) {
	view := loaded(t, newMock())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
