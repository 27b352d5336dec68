// Package cli provides the cobra command tree for layerex.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services bundles the core services the commands drive.
type Services struct {
	Session  driving.SessionService
	Settings driving.SettingsService
	History  driving.HistoryService

	// NewSession creates an independent session. Servers handling
	// several documents at once use it instead of Session.
	NewSession func() driving.SessionService
}

var (
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	newSession      func() driving.SessionService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "layerex",
	Short: "Flatten and export the layers of PSD documents",
	Long: `layerex lists the layer tree of a PSD document as a flat, numbered list
and exports the selected layers as individual images, as one merged
composite, or as a plain text layer manifest.

Leaf layers are numbered 001, 002, ... from the top of the layer panel.
Use those numbers with --select.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices installs the services used by all commands.
func SetServices(s Services) {
	sessionService = s.Session
	settingsService = s.Settings
	historyService = s.History
	newSession = s.NewSession
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadDocument opens path and loads it into the session.
func loadDocument(ctx context.Context, path string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	logger.Debug("loading %s", path)
	if err := sessionService.Load(ctx, filepath.Base(path), f); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// entryByOrdinal returns the flat index of the leaf with the given ordinal.
func entryByOrdinal(entries []domain.FlatEntry, ordinal int) (int, error) {
	for i := range entries {
		if !entries[i].IsGroup && entries[i].Ordinal == ordinal {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no layer %03d", domain.ErrNotFound, ordinal)
}

// defaultPlacement returns the configured placement for individual exports.
func defaultPlacement() domain.Placement {
	if settingsService == nil {
		return domain.DefaultSettings().Export.Placement()
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("failed to read settings: %v", err)
		return domain.DefaultSettings().Export.Placement()
	}
	return settings.Export.Placement()
}
