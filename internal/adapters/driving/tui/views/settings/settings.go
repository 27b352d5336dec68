// Package settings provides the settings view for the TUI.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/input"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// item is one editable setting.
type item struct {
	key   string
	label string
	value func(*domain.Settings) string
}

var items = []item{
	{domain.SettingOutputDir, "Output directory", func(s *domain.Settings) string {
		return s.Export.OutputDir
	}},
	{domain.SettingFormat, "Image format", func(s *domain.Settings) string {
		return s.Export.Format
	}},
	{domain.SettingFullCanvas, "Full canvas", func(s *domain.Settings) string {
		return strconv.FormatBool(s.Export.FullCanvas)
	}},
	{domain.SettingSingleFileDirect, "Save lone layer directly", func(s *domain.Settings) string {
		return strconv.FormatBool(s.Export.SingleFileDirect)
	}},
	{domain.SettingPreviewMaxSize, "Preview max size", func(s *domain.Settings) string {
		return strconv.Itoa(s.Preview.MaxSize)
	}},
	{domain.SettingHistoryEnabled, "Record history", func(s *domain.Settings) string {
		return strconv.FormatBool(s.History.Enabled)
	}},
}

// View lists settings and edits them one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.Settings
	err      error
	notice   string

	selected int
	editing  bool
	field    *input.Field

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := input.NewField(s, "", "")
	field.Blur()

	return &View{
		styles:          s,
		settingsService: settingsService,
		field:           field,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// setValue returns a command that stores raw under key.
func (v *View) setValue(key, raw string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.SetValue(key, raw)}
	}
}

// resetValue returns a command that restores the default of key.
func (v *View) resetValue(key string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Reset(key)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.notice = ""
			return v, nil
		}
		v.err = nil
		v.notice = msg.Key + " saved"
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(items)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		it := items[v.selected]
		v.editing = true
		v.notice = ""
		v.field.SetLabel(it.label)
		v.field.SetValue(it.value(v.settings))
		return v, v.field.Focus()
	case "r":
		return v, v.resetValue(items[v.selected].key)
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		raw := strings.TrimSpace(v.field.Value())
		key := items[v.selected].key
		v.stopEditing()
		return v, v.setValue(key, raw)
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.field.Blur()
	v.field.Reset()
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	for i, it := range items {
		line := fmt.Sprintf("%-26s %s", it.label, it.value(v.settings))
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(items[v.selected].key))
	b.WriteString("\n\n")

	if v.editing {
		b.WriteString(v.field.View())
		b.WriteString("\n\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	if v.editing {
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	}
	return v.styles.Help.Render("[j/k] move  [enter] edit  [r] reset  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.stopEditing()
	v.err = nil
	v.notice = ""
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Selected returns the key of the highlighted setting.
func (v *View) Selected() string {
	return items[v.selected].key
}
