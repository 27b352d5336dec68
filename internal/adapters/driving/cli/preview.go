package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ambrosestarlit/layerex/internal/adapters/driving/tui/components/preview"
	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var (
	previewNative bool
	previewWidth  int
	previewHeight int
)

var previewCmd = &cobra.Command{
	Use:   "preview [file] [layer]",
	Short: "Draw one layer in the terminal",
	Long: `Render a single layer and draw it in the terminal with coloured half-block
characters. The layer is given by the number shown in "layerex layers".

The size defaults to the terminal size.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&previewNative, "native", false, "show the layer at its own size instead of on the canvas")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "W", 0, "maximum width in columns")
	previewCmd.Flags().IntVarP(&previewHeight, "height", "H", 0, "maximum height in rows")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	ordinal, err := strconv.Atoi(args[1])
	if err != nil || ordinal < 1 {
		return fmt.Errorf("invalid layer number %q", args[1])
	}

	ctx := cmd.Context()
	if err := loadDocument(ctx, args[0]); err != nil {
		return err
	}

	entries := sessionService.Entries()
	idx, err := entryByOrdinal(entries, ordinal)
	if err != nil {
		return err
	}

	placement := domain.PlacementFullCanvas
	if previewNative {
		placement = domain.PlacementNative
	}

	img, err := sessionService.Preview(ctx, idx, placement)
	if err != nil {
		return fmt.Errorf("failed to render layer %03d: %w", ordinal, err)
	}

	cols, rows := previewBounds()
	cmd.Printf("%s %s\n", entries[idx].OrdinalLabel(), entries[idx].DisplayName)
	cmd.Println(preview.Render(img, cols, rows))
	return nil
}

// previewBounds returns the drawing area from flags, falling back to the
// terminal size and then to 80x24.
func previewBounds() (cols, rows int) {
	cols, rows = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h-2
	}
	if previewWidth > 0 {
		cols = previewWidth
	}
	if previewHeight > 0 {
		rows = previewHeight
	}
	return cols, max(rows, 1)
}
