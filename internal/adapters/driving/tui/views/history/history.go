// Package history provides the export history view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/messages"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/styles"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// recordLimit bounds how many records are loaded.
const recordLimit = 50

// View lists past export runs.
type View struct {
	styles  *styles.Styles
	history driving.HistoryService
	ctx     context.Context

	records []domain.ExportRecord
	enabled bool
	loading bool
	err     error

	selected int
	offset   int
	width    int
	height   int
}

// NewView creates a new history view.
func NewView(s *styles.Styles, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		history: history,
		ctx:     context.Background(),
		enabled: true,
	}
}

// SetContext sets the context used for history queries.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	history, ctx := v.history, v.ctx
	return func() tea.Msg {
		if history == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("history service not available")}
		}
		records, err := history.List(ctx, recordLimit)
		return messages.HistoryLoaded{Records: records, Enabled: history.Enabled(), Err: err}
	}
}

func (v *View) clear() tea.Cmd {
	history, ctx := v.history, v.ctx
	return func() tea.Msg {
		if history == nil {
			return messages.HistoryCleared{Err: fmt.Errorf("history service not available")}
		}
		return messages.HistoryCleared{Err: history.Clear(ctx)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.records = msg.Records
			v.enabled = msg.Enabled
			v.selected = min(v.selected, max(0, len(v.records)-1))
			v.offset = 0
		}
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.selected = 0
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.records)-1 {
				v.selected++
			}
		case "r":
			return v, v.load()
		case "c":
			return v, v.clear()
		}
		v.scroll()
	}

	return v, nil
}

func (v *View) visibleRows() int {
	// title, notice and help lines
	return max(1, v.height-8)
}

func (v *View) scroll() {
	rows := v.visibleRows()
	if v.selected < v.offset {
		v.offset = v.selected
	}
	if v.selected >= v.offset+rows {
		v.offset = v.selected - rows + 1
	}
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Export History"))
	b.WriteString("\n\n")

	if !v.enabled {
		b.WriteString(v.styles.Warning.Render("History recording is disabled (history.enabled = false)."))
		b.WriteString("\n\n")
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.loading && len(v.records) == 0:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case len(v.records) == 0:
		b.WriteString(v.styles.Muted.Render("No exports recorded."))
	default:
		end := min(len(v.records), v.offset+v.visibleRows())
		for i := v.offset; i < end; i++ {
			line := formatRecord(v.records[i])
			if i == v.selected {
				b.WriteString("> " + v.styles.Selected.Render(line))
			} else {
				b.WriteString("  " + v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		for _, path := range v.records[v.selected].Saved {
			b.WriteString(v.styles.Muted.Render("  " + path))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [r] reload  [c] clear  [esc] back"))
	return b.String()
}

func formatRecord(r domain.ExportRecord) string {
	line := fmt.Sprintf("%s  %-10s  %s  %d file(s)",
		r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.Document, r.FileCount)
	if r.FailureCount > 0 {
		line += fmt.Sprintf(", %d skipped", r.FailureCount)
	}
	return line
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Records returns the loaded records.
func (v *View) Records() []domain.ExportRecord {
	return v.records
}

// Selected returns the highlighted record index.
func (v *View) Selected() int {
	return v.selected
}
