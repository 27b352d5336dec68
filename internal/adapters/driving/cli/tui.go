package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Open a document, pick layers from the flattened list, preview them and run
an export with live progress.

Controls:
  ↑/k, ↓/j - Move
  Space    - Toggle layer
  a / n    - Select all / none
  p        - Preview layer
  e        - Export
  o        - Open another file
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Session:  sessionService,
		Settings: settingsService,
		History:  historyService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if len(args) == 1 {
		app.WithFile(args[0])
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
