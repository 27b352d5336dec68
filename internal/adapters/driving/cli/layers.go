package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var layersJSON bool

var layersCmd = &cobra.Command{
	Use:   "layers [file]",
	Short: "List the layers of a document",
	Long: `Print the flattened layer tree of a document, top of the layer panel first.

Groups are shown as headings. Every leaf layer carries the number used by
"export --select" and "preview".`,
	Args: cobra.ExactArgs(1),
	RunE: runLayers,
}

func init() {
	layersCmd.Flags().BoolVar(&layersJSON, "json", false, "output layers as JSON")
	rootCmd.AddCommand(layersCmd)
}

// layerJSON is the JSON form of one flat entry.
type layerJSON struct {
	Index   int    `json:"index"`
	Ordinal int    `json:"ordinal,omitempty"`
	Name    string `json:"name"`
	Group   bool   `json:"group"`
	Depth   int    `json:"depth"`
	Hidden  bool   `json:"hidden,omitempty"`
	Left    int    `json:"left,omitempty"`
	Top     int    `json:"top,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type documentJSON struct {
	Name   string      `json:"name"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Layers []layerJSON `json:"layers"`
}

func runLayers(cmd *cobra.Command, args []string) error {
	if err := loadDocument(cmd.Context(), args[0]); err != nil {
		return err
	}

	doc := sessionService.Document()
	entries := sessionService.Entries()

	if layersJSON {
		return outputLayersJSON(cmd, doc, entries)
	}

	cmd.Printf("%s  %dx%d  %d layers\n", doc.Name, doc.Width, doc.Height, domain.CountLeaves(entries))
	cmd.Println()
	if len(entries) == 0 {
		cmd.Println("No layers found.")
		return nil
	}
	for i := range entries {
		cmd.Println(formatEntry(entries[i]))
	}
	return nil
}

// formatEntry renders one row of the layer listing.
func formatEntry(e domain.FlatEntry) string {
	indent := strings.Repeat("  ", e.Depth)
	if e.IsGroup {
		return fmt.Sprintf("  %s▸ %s", indent, e.DisplayName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s%s  %s", indent, e.OrdinalLabel(), e.DisplayName)
	if src := e.Source; src != nil {
		if src.HasContent() {
			fmt.Fprintf(&b, "  %dx%d at %d,%d", src.Width(), src.Height(), src.Left, src.Top)
		} else {
			b.WriteString("  (empty)")
		}
		if src.Hidden {
			b.WriteString("  (hidden)")
		}
	}
	return b.String()
}

func outputLayersJSON(cmd *cobra.Command, doc *domain.Document, entries []domain.FlatEntry) error {
	out := documentJSON{
		Name:   doc.Name,
		Width:  doc.Width,
		Height: doc.Height,
		Layers: make([]layerJSON, 0, len(entries)),
	}
	for i, e := range entries {
		row := layerJSON{
			Index:   i,
			Ordinal: e.Ordinal,
			Name:    e.DisplayName,
			Group:   e.IsGroup,
			Depth:   e.Depth,
		}
		if src := e.Source; src != nil {
			row.Hidden = src.Hidden
			row.Left, row.Top = src.Left, src.Top
			row.Width, row.Height = src.Width(), src.Height()
		}
		out.Layers = append(out.Layers, row)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layers: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
