package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// defaultWatchDebounce is how long a file must stay unchanged before export.
const defaultWatchDebounce = 500 * time.Millisecond

var (
	watchMode     string
	watchOut      string
	watchNative   bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Export documents as they appear in a directory",
	Long: `Watch a directory and export every layer of each document that is
created or saved there. Files the decoders do not accept are ignored.

Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchMode, "mode", "m", string(domain.ExportIndividual),
		"export mode: individual, merged or list")
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (default from settings)")
	watchCmd.Flags().BoolVar(&watchNative, "native", false, "crop each layer to its own size")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", defaultWatchDebounce,
		"quiet period before a changed file is exported")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	mode := domain.ExportMode(watchMode)
	if !mode.IsValid() {
		return fmt.Errorf("invalid mode %q (valid: individual, merged, list)", watchMode)
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)
	return watchLoop(ctx, watcher, watchDebounce, func(path string) {
		exportWatched(ctx, cmd, path, mode)
	})
}

// watchLoop calls handle for each file that was created or written and then
// left alone for the debounce period. It returns when ctx is done or the
// watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, debounce time.Duration, handle func(string)) error {
	ready := make(chan string)
	done := make(chan struct{})
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			path := ev.Name
			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(debounce, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			delete(timers, path)
			handle(path)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func exportWatched(ctx context.Context, cmd *cobra.Command, path string, mode domain.ExportMode) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	if err := loadDocument(ctx, path); err != nil {
		if errors.Is(err, domain.ErrUnsupportedInput) {
			logger.Debug("skipping %s", path)
			return
		}
		cmd.PrintErrf("%s: %v\n", filepath.Base(path), err)
		return
	}

	if mode != domain.ExportList {
		if err := sessionService.SelectAll(); err != nil {
			cmd.PrintErrf("%s: %v\n", filepath.Base(path), err)
			return
		}
	}

	placement := defaultPlacement()
	if watchNative {
		placement = domain.PlacementNative
	}

	result, err := sessionService.Export(ctx, domain.ExportRequest{
		Mode:      mode,
		Placement: placement,
		OutputDir: watchOut,
	}, nil)
	if err != nil {
		cmd.PrintErrf("%s: export failed: %v\n", filepath.Base(path), err)
		return
	}

	cmd.Printf("%s: %d file(s) exported", filepath.Base(path), len(result.Files))
	if result.Partial() {
		cmd.Printf(", %d skipped", len(result.Failures))
	}
	cmd.Println()
}
