package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change export, preview and history settings.

Settings are stored in ~/.layerex/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  ` + strings.Join(domain.SettingKeys(), "\n  ") + `

Examples:
  layerex settings set export.format tiff
  layerex settings set export.full_canvas false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore the default value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Output directory: %s\n", settings.Export.OutputDir)
	cmd.Printf("  Format: %s\n", settings.Export.Format)
	cmd.Printf("  Full canvas: %s\n", yesNo(settings.Export.FullCanvas))
	cmd.Printf("  Save lone layer directly: %s\n", yesNo(settings.Export.SingleFileDirect))
	cmd.Println()

	cmd.Println("[Preview]")
	if settings.Preview.MaxSize > 0 {
		cmd.Printf("  Max size: %d px\n", settings.Preview.MaxSize)
	} else {
		cmd.Println("  Max size: unlimited")
	}
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", yesNo(settings.History.Enabled))

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if err := settingsService.Reset(key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	cmd.Printf("%s restored to default\n", key)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
