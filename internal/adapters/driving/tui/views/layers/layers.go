// Package layers provides the layer selection view for the TUI.
package layers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/list"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/preview"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// chromeRows is the number of rows taken by the title, help and status bar.
const chromeRows = 6

// View shows the flattened layer list, lets the user pick layers and
// previews the layer under the cursor.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	ctx     context.Context

	list        *list.LayerList
	showPreview bool
	previewIdx  int
	previewImg  image.Image
	previewErr  error
	err         error
	width       int
	height      int
}

// NewView creates a new layers view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		session:    session,
		ctx:        context.Background(),
		list:       list.NewLayerList(s),
		previewIdx: -1,
	}
}

// SetContext sets the context used for rendering previews.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.requestPreview()
}

// Refresh reloads entries and selection from the session.
func (v *View) Refresh() {
	if v.session == nil {
		return
	}
	v.list.SetEntries(v.session.Entries())
	v.list.SetChecked(v.session.Selection())
	v.previewIdx = -1
	v.previewImg = nil
	v.previewErr = nil
	v.err = nil
}

// Update handles messages for the layers view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PreviewLoaded:
		if msg.Index == v.list.Cursor() {
			v.previewIdx = msg.Index
			v.previewImg = msg.Image
			v.previewErr = msg.Err
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, changeView(messages.ViewMenu)
	case "e":
		return v, changeView(messages.ViewExport)
	case "o":
		return v, changeView(messages.ViewOpen)
	case " ", "x":
		return v, v.toggle()
	case "a":
		return v, v.selectAll()
	case "n":
		if v.session != nil {
			v.session.DeselectAll()
		}
		return v, v.syncSelection()
	case "p":
		v.showPreview = !v.showPreview
		return v, v.requestPreview()
	}

	before := v.list.Cursor()
	v.list, _ = v.list.Update(msg)
	if v.list.Cursor() != before {
		return v, v.requestPreview()
	}
	return v, nil
}

func (v *View) toggle() tea.Cmd {
	if v.session == nil {
		return nil
	}
	if _, err := v.session.Toggle(v.list.Cursor()); err != nil {
		if !errors.Is(err, domain.ErrNotSelectable) {
			v.err = err
		}
		return nil
	}
	v.err = nil
	return v.syncSelection()
}

func (v *View) selectAll() tea.Cmd {
	if v.session == nil {
		return nil
	}
	if err := v.session.SelectAll(); err != nil {
		v.err = err
		return nil
	}
	return v.syncSelection()
}

// syncSelection copies the session selection into the list and reports it.
func (v *View) syncSelection() tea.Cmd {
	if v.session == nil {
		return nil
	}
	selection := v.session.Selection()
	v.list.SetChecked(selection)
	n := len(selection)
	return func() tea.Msg {
		return messages.SelectionChanged{Selected: n}
	}
}

// requestPreview renders the layer under the cursor when the preview is shown.
func (v *View) requestPreview() tea.Cmd {
	if !v.showPreview || v.session == nil {
		return nil
	}
	entry, ok := v.list.Current()
	if !ok || !entry.Selectable() {
		v.previewIdx = v.list.Cursor()
		v.previewImg = nil
		v.previewErr = nil
		return nil
	}

	ctx, session, idx := v.ctx, v.session, v.list.Cursor()
	return func() tea.Msg {
		img, err := session.Preview(ctx, idx, domain.PlacementFullCanvas)
		return messages.PreviewLoaded{Index: idx, Image: img, Err: err}
	}
}

// View renders the layers view.
func (v *View) View() string {
	var b strings.Builder

	title := "Layers"
	if v.session != nil {
		if doc := v.session.Document(); doc != nil {
			title = fmt.Sprintf("Layers of %s (%dx%d)", doc.Name, doc.Width, doc.Height)
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.session == nil || v.session.Document() == nil {
		b.WriteString(v.styles.Muted.Render("No document loaded. Press [o] to open one."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	body := v.list.View()
	if v.showPreview {
		//nolint:misspell // lipgloss.Top is the correct constant from the library
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", v.renderPreview())
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderPreview() string {
	cols, rows := v.previewSize()
	var content string
	switch {
	case v.previewErr != nil:
		content = v.styles.Error.Render(v.previewErr.Error())
	case v.previewIdx != v.list.Cursor():
		content = v.styles.Muted.Render("Rendering...")
	case v.previewImg == nil:
		content = v.styles.Muted.Render("Nothing to preview.")
	default:
		content = preview.Render(v.previewImg, cols, rows)
	}
	return v.styles.Border.Render(content)
}

// previewSize returns the cell area of the preview pane.
func (v *View) previewSize() (cols, rows int) {
	cols = max(10, v.width/2-4)
	rows = max(4, v.height-chromeRows-2)
	return cols, rows
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render(
		"[space] toggle  [a] all  [n] none  [p] preview  [e] export  [o] open  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-chromeRows)
}

// Cursor returns the flat index under the cursor.
func (v *View) Cursor() int {
	return v.list.Cursor()
}

// PreviewShown reports whether the preview pane is visible.
func (v *View) PreviewShown() bool {
	return v.showPreview
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}
