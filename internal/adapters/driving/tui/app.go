package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/status"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/keymap"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/export"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/history"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/layers"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/menu"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/open"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/views/settings"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	openView     *open.View
	layersView   *layers.View
	exportView   *export.View
	historyView  *history.View
	settingsView *settings.View
	statusBar    *status.Bar

	// file is loaded on Init when set.
	file string

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		openView:     open.NewView(s, ports.Session),
		layersView:   layers.NewView(s, ports.Session),
		exportView:   export.NewView(s, ports.Session, ports.Settings),
		historyView:  history.NewView(s, ports.History),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its background work.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.openView.SetContext(ctx)
	a.layersView.SetContext(ctx)
	a.exportView.SetContext(ctx)
	a.historyView.SetContext(ctx)
	return a
}

// WithFile makes the app open path on start.
func (a *App) WithFile(path string) *App {
	a.file = path
	a.openView.SetPath(path)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("layerex"),
	}
	if a.file != "" {
		a.statusBar.SetState(status.StateLoading)
		cmds = append(cmds, open.Load(a.ctx, a.ports.Session, a.file))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if keymap.Matches(msg.String(), a.keymap.Help) && a.helpToggleAllowed() {
			if a.currentView == messages.ViewHelp {
				a.currentView = messages.ViewMenu
			} else {
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.DocumentLoaded:
		a.openView, cmd = a.openView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
			a.currentView = messages.ViewOpen
			return a, cmd
		}
		a.err = nil
		a.documentLoaded()
		return a, tea.Batch(cmd, a.switchView(messages.ViewLayers))

	case messages.SelectionChanged:
		_, total := a.statusBar.Counts()
		a.statusBar.SetCounts(msg.Selected, total)
		return a, nil

	case messages.PreviewLoaded:
		a.layersView, cmd = a.layersView.Update(msg)
		return a, cmd

	case messages.ExportProgress:
		a.statusBar.SetState(status.StateExporting)
		a.exportView, cmd = a.exportView.Update(msg)
		return a, cmd

	case messages.ExportCompleted:
		a.exportView, cmd = a.exportView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(msg.Err.Error())
		} else {
			a.err = nil
			a.statusBar.SetState(status.StateLayers)
			a.statusBar.SetMessage("")
		}
		return a, cmd

	case messages.HistoryLoaded, messages.HistoryCleared:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// helpToggleAllowed reports whether "?" opens help instead of being typed.
func (a *App) helpToggleAllowed() bool {
	switch a.currentView {
	case messages.ViewOpen:
		return false
	case messages.ViewSettings:
		return !a.settingsView.Editing()
	}
	return true
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOpen:
		a.openView, cmd = a.openView.Update(msg)
	case messages.ViewLayers:
		a.layersView, cmd = a.layersView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// switchView activates view and runs its initialisation.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewOpen:
		a.openView.Reset()
		return a.openView.Init()
	case messages.ViewLayers:
		a.layersView.Refresh()
		if a.statusBar.State() != status.StateError {
			a.statusBar.SetState(status.StateLayers)
		}
	case messages.ViewExport:
		a.exportView.Reset()
		return a.exportView.Init()
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		if a.statusBar.State() == status.StateLayers {
			a.statusBar.SetState(status.StateReady)
		}
	}
	return nil
}

// documentLoaded syncs the menu and status bar with the new document.
func (a *App) documentLoaded() {
	doc := a.ports.Session.Document()
	if doc == nil {
		return
	}
	a.menuView.SetDocument(doc.Name)
	a.statusBar.SetState(status.StateLayers)
	a.statusBar.SetMessage("")
	a.statusBar.SetDocument(doc.Name)
	a.statusBar.SetCounts(
		len(a.ports.Session.Selection()),
		domain.CountLeaves(a.ports.Session.Entries()),
	)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewOpen:
		body = a.openView.View()
	case messages.ViewLayers:
		body = a.layersView.View()
	case messages.ViewExport:
		body = a.exportView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ?           Toggle help
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Layers:
  j/k, ↑/↓    Move
  space, x    Toggle layer
  a / n       Select all / none
  p           Toggle preview
  e           Export selection
  o           Open another file

Export:
  j/k         Choose mode
  c           Toggle full canvas / layer size
  f           Cycle image format
  enter       Start export
  esc         Cancel or go back

History:
  r           Reload
  c           Clear

Settings:
  enter       Edit value
  r           Restore default

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	bodyHeight := max(1, height-1)
	a.menuView.SetDimensions(width, bodyHeight)
	a.openView.SetDimensions(width, bodyHeight)
	a.layersView.SetDimensions(width, bodyHeight)
	a.exportView.SetDimensions(width, bodyHeight)
	a.historyView.SetDimensions(width, bodyHeight)
	a.settingsView.SetDimensions(width, bodyHeight)
	a.statusBar.SetWidth(width)
}
