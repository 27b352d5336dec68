package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var (
	manifestOut    string
	manifestStdout bool
)

var manifestCmd = &cobra.Command{
	Use:   "manifest [file]",
	Short: "Write the layer list of a document as text",
	Long: `Write the numbered layer list of a document to <name>.layers.txt.

Use --stdout to print it instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().StringVarP(&manifestOut, "out", "o", "", "output directory (default from settings)")
	manifestCmd.Flags().BoolVar(&manifestStdout, "stdout", false, "print the manifest instead of saving it")
	manifestCmd.MarkFlagsMutuallyExclusive("out", "stdout")
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := loadDocument(ctx, args[0]); err != nil {
		return err
	}

	if manifestStdout {
		text, err := sessionService.Manifest()
		if err != nil {
			return fmt.Errorf("failed to render manifest: %w", err)
		}
		cmd.Print(text)
		return nil
	}

	result, err := sessionService.Export(ctx, domain.ExportRequest{
		Mode:      domain.ExportList,
		OutputDir: manifestOut,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	for _, path := range result.Saved {
		cmd.Printf("Saved %s\n", path)
	}
	return nil
}
