// Package export provides the export view for the TUI.
package export

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Phase is the stage of the export view.
type Phase int

const (
	PhaseConfigure Phase = iota
	PhaseRunning
	PhaseDone
)

// progressBuffer bounds the queued progress reports of a running export.
const progressBuffer = 16

// View configures an export, shows its progress and reports the result.
type View struct {
	styles   *styles.Styles
	session  driving.SessionService
	settings driving.SettingsService
	ctx      context.Context

	modes     []domain.ExportMode
	mode      int
	placement domain.Placement
	format    string

	phase   Phase
	bar     progress.Model
	percent float64
	status  string
	events  chan tea.Msg
	cancel  context.CancelFunc

	result *domain.ExportResult
	err    error
	width  int
	height int
}

// NewView creates a new export view.
func NewView(s *styles.Styles, session driving.SessionService, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	from, to := s.ProgressColors()
	return &View{
		styles:   s,
		session:  session,
		settings: settings,
		ctx:      context.Background(),
		modes:    domain.AllExportModes(),
		format:   domain.FormatPNG,
		bar:      progress.New(progress.WithGradient(from, to)),
	}
}

// SetContext sets the parent context of export runs.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset returns to the configure phase with defaults from settings.
// A running export is left alone.
func (v *View) Reset() {
	if v.phase == PhaseRunning {
		return
	}
	v.phase = PhaseConfigure
	v.percent = 0
	v.status = ""
	v.result = nil
	v.err = nil

	defaults := domain.DefaultSettings()
	if v.settings != nil {
		if s, err := v.settings.Get(); err == nil {
			defaults = *s
		}
	}
	v.format = defaults.Export.Format
	v.placement = defaults.Export.Placement()
}

// Update handles messages for the export view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ExportProgress:
		v.percent = msg.Progress.Percent
		v.status = msg.Progress.Status
		return v, v.waitForEvent()

	case messages.ExportCompleted:
		v.phase = PhaseDone
		v.events = nil
		if v.cancel != nil {
			v.cancel()
			v.cancel = nil
		}
		v.result = msg.Result
		v.err = msg.Err
		if msg.Err == nil {
			v.percent = 100
		}
		return v, nil

	case tea.KeyMsg:
		switch v.phase {
		case PhaseConfigure:
			return v.handleConfigureKey(msg)
		case PhaseRunning:
			if msg.Type == tea.KeyEsc && v.cancel != nil {
				v.cancel()
				v.status = "Cancelling..."
			}
			return v, nil
		case PhaseDone:
			if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
				v.Reset()
				return v, changeView(messages.ViewLayers)
			}
		}
	}

	return v, nil
}

func (v *View) handleConfigureKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.mode > 0 {
			v.mode--
		}
	case "down", "j":
		if v.mode < len(v.modes)-1 {
			v.mode++
		}
	case "c":
		if v.placement == domain.PlacementFullCanvas {
			v.placement = domain.PlacementNative
		} else {
			v.placement = domain.PlacementFullCanvas
		}
	case "f":
		formats := domain.AllFormats()
		i := slices.Index(formats, v.format)
		v.format = formats[(i+1)%len(formats)]
	case "enter":
		return v, v.start()
	case "esc":
		return v, changeView(messages.ViewLayers)
	}
	return v, nil
}

// start launches the export in the background and streams its progress.
func (v *View) start() tea.Cmd {
	if v.session == nil {
		v.err = errors.New("session service not available")
		v.phase = PhaseDone
		return nil
	}

	ctx, cancel := context.WithCancel(v.ctx)
	events := make(chan tea.Msg, progressBuffer)
	req := domain.ExportRequest{
		Mode:      v.modes[v.mode],
		Placement: v.placement,
		Format:    v.format,
	}

	v.phase = PhaseRunning
	v.percent = 0
	v.status = "Starting..."
	v.result = nil
	v.err = nil
	v.cancel = cancel
	v.events = events

	session := v.session
	go func() {
		result, err := session.Export(ctx, req, func(p domain.Progress) {
			select {
			case events <- messages.ExportProgress{Progress: p}:
			default:
			}
		})
		events <- messages.ExportCompleted{Result: result, Err: err}
		close(events)
	}()

	return v.waitForEvent()
}

// waitForEvent returns a command that delivers the next export event.
func (v *View) waitForEvent() tea.Cmd {
	events := v.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// View renders the export view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Export"))
	b.WriteString("\n\n")

	switch v.phase {
	case PhaseConfigure:
		v.renderConfigure(&b)
	case PhaseRunning:
		b.WriteString(v.bar.ViewAs(v.percent / 100))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Normal.Render(v.status))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] cancel"))
	case PhaseDone:
		v.renderDone(&b)
	}
	return b.String()
}

func (v *View) renderConfigure(b *strings.Builder) {
	selected := 0
	if v.session != nil {
		selected = len(v.session.Selection())
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d layer(s) selected", selected)))
	b.WriteString("\n\n")

	for i, m := range v.modes {
		if i == v.mode {
			b.WriteString("> " + v.styles.Title.Render(m.Description()))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(m.Description()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	placement := "full canvas"
	if v.placement == domain.PlacementNative {
		placement = "layer size"
	}
	b.WriteString(v.styles.Subtitle.Render("Placement: ") + v.styles.Normal.Render(placement))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Format: ") + v.styles.Normal.Render(v.format))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] mode  [c] placement  [f] format  [enter] start  [esc] back"))
}

func (v *View) renderDone(b *strings.Builder) {
	switch {
	case errors.Is(v.err, context.Canceled):
		b.WriteString(v.styles.Warning.Render("Export cancelled."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.result != nil:
		b.WriteString(v.bar.ViewAs(1))
		b.WriteString("\n\n")
		if len(v.result.Saved) == 0 {
			b.WriteString(v.styles.Warning.Render("Nothing was exported."))
			b.WriteString("\n")
		}
		for _, path := range v.result.Saved {
			b.WriteString(v.styles.Success.Render("Saved " + path))
			b.WriteString("\n")
		}
		for _, f := range v.result.Failures {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Skipped %s: %s", f.Name, f.Reason)))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] back to layers"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.bar.Width = max(10, min(width-4, 80))
}

// Phase returns the current phase.
func (v *View) Phase() Phase {
	return v.phase
}

// Mode returns the highlighted export mode.
func (v *View) Mode() domain.ExportMode {
	return v.modes[v.mode]
}

// Placement returns the chosen placement.
func (v *View) Placement() domain.Placement {
	return v.placement
}

// Format returns the chosen image format.
func (v *View) Format() string {
	return v.format
}

// Result returns the last export result.
func (v *View) Result() *domain.ExportResult {
	return v.result
}

// Err returns the last export error.
func (v *View) Err() error {
	return v.err
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
