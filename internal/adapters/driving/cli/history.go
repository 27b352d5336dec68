package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past exports",
	Long:  `List recent export runs, newest first. Use --clear to delete the history.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete the export history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	ctx := cmd.Context()
	if historyClear {
		if err := historyService.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		cmd.Println("Export history cleared.")
		return nil
	}

	records, err := historyService.List(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if !historyService.Enabled() {
		cmd.Println("History recording is disabled (history.enabled = false).")
	}
	if len(records) == 0 {
		cmd.Println("No exports recorded.")
		return nil
	}

	for i := range records {
		r := &records[i]
		cmd.Printf("%s  %-10s  %s  %d file(s)",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Mode, r.Document, r.FileCount)
		if r.FailureCount > 0 {
			cmd.Printf(", %d skipped", r.FailureCount)
		}
		cmd.Println()
		for _, path := range r.Saved {
			cmd.Printf("    %s\n", path)
		}
	}
	return nil
}
