// Package open provides the document picker view for the TUI.
package open

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/input"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// View asks for the path of a document and loads it.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	ctx     context.Context

	field   *input.Field
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new open view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		session: session,
		ctx:     context.Background(),
		field:   input.NewField(s, "File", "path/to/document.psd"),
	}
}

// SetContext sets the context used for loading.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.field.Focus(), v.field.Init())
}

// Reset clears the error and loading state but keeps the last path.
func (v *View) Reset() {
	v.loading = false
	v.err = nil
}

// Load returns a command that loads path into session.
func Load(ctx context.Context, session driving.SessionService, path string) tea.Cmd {
	return func() tea.Msg {
		if session == nil {
			return messages.DocumentLoaded{Path: path, Err: errors.New("session service not available")}
		}

		f, err := os.Open(path)
		if err != nil {
			return messages.DocumentLoaded{Path: path, Err: err}
		}
		defer f.Close()

		err = session.Load(ctx, filepath.Base(path), f)
		return messages.DocumentLoaded{Path: path, Err: err}
	}
}

// Update handles messages for the open view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentLoaded:
		v.loading = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case tea.KeyEnter:
			path := expandHome(strings.TrimSpace(v.field.Value()))
			if path == "" || v.loading {
				return v, nil
			}
			v.loading = true
			v.err = nil
			return v, Load(v.ctx, v.session, path)
		}
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// View renders the open view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Open document"))
	b.WriteString("\n\n")
	b.WriteString(v.field.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] open  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}

// SetPath prefills the path input.
func (v *View) SetPath(path string) {
	v.field.SetValue(path)
}

// Path returns the current path input.
func (v *View) Path() string {
	return v.field.Value()
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
