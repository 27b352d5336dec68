package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var (
	exportMode   string
	exportSelect string
	exportAll    bool
	exportNative bool
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export layers of a document",
	Long: `Export the selected layers of a document.

Modes:
  individual - one image per layer, packed into <name>_layers.zip
               (a lone layer is saved as a plain image)
  merged     - the selected layers composited into <name>_merged.<ext>
  list       - the layer list as text in <name>.layers.txt

Without --select every layer is exported.

Examples:
  layerex export poster.psd
  layerex export poster.psd --select 1,3,5-7 --native
  layerex export poster.psd --mode merged --select 2-4 --format tiff
  layerex export poster.psd --mode list --out ./notes`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", string(domain.ExportIndividual),
		"export mode: individual, merged or list")
	exportCmd.Flags().StringVarP(&exportSelect, "select", "s", "", "layer numbers to export, e.g. 1,3,5-7")
	exportCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "export every layer")
	exportCmd.Flags().BoolVar(&exportNative, "native", false, "crop each layer to its own size")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default from settings)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "image format: png, bmp or tiff")
	exportCmd.MarkFlagsMutuallyExclusive("select", "all")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	mode := domain.ExportMode(exportMode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid mode %q (valid: individual, merged, list)", exportMode)
	}

	ctx := cmd.Context()
	if err := loadDocument(ctx, args[0]); err != nil {
		return err
	}

	if mode != domain.ExportList {
		if err := applySelection(exportSelect); err != nil {
			return err
		}
	}

	placement := defaultPlacement()
	if exportNative {
		placement = domain.PlacementNative
	}

	req := domain.ExportRequest{
		Mode:      mode,
		Placement: placement,
		Format:    exportFormat,
		OutputDir: exportOut,
	}

	printer := newProgressPrinter(cmd.ErrOrStderr())
	result, err := sessionService.Export(ctx, req, printer.Report)
	printer.Done()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	return printExportResult(cmd, result)
}

// applySelection selects the given ordinals, or every layer when sel is empty.
func applySelection(sel string) error {
	if sel == "" {
		if err := sessionService.SelectAll(); err != nil {
			return fmt.Errorf("failed to select layers: %w", err)
		}
		return nil
	}

	ordinals, err := parseOrdinals(sel, domain.CountLeaves(sessionService.Entries()))
	if err != nil {
		return err
	}
	if err := sessionService.SelectOrdinals(ordinals); err != nil {
		return fmt.Errorf("failed to select layers: %w", err)
	}
	return nil
}

func printExportResult(cmd *cobra.Command, result *domain.ExportResult) error {
	entries := sessionService.Entries()
	for _, f := range result.Failures {
		label := f.Name
		if f.Index >= 0 && f.Index < len(entries) {
			label = entries[f.Index].OrdinalLabel() + " " + f.Name
		}
		cmd.PrintErrf("Skipped %s: %s\n", label, f.Reason)
	}

	if len(result.Saved) == 0 {
		return errors.New("no layers could be exported")
	}

	for _, path := range result.Saved {
		cmd.Printf("Saved %s\n", path)
	}
	cmd.Printf("%d file(s) exported", len(result.Files))
	if result.Partial() {
		cmd.Printf(", %d skipped", len(result.Failures))
	}
	cmd.Println()
	return nil
}
