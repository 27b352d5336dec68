// Command layerex lists, previews and exports the layers of PSD documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ambrosestarlit/layerex/internal/adapters/driven/archive"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/config/file"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/decoder"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/decoder/psd"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/imaging"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/output"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/storage/memory"
	"github.com/ambrosestarlit/layerex/internal/adapters/driven/storage/sqlite"
	"github.com/ambrosestarlit/layerex/internal/adapters/driving/cli"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
	"github.com/ambrosestarlit/layerex/internal/core/services"
	"github.com/ambrosestarlit/layerex/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open config: %v\n", err)
		return err
	}
	settings := services.NewSettingsService(configStore)

	var history driven.HistoryStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("history database unavailable, using memory: %v", err)
		history = memory.NewHistoryStore()
	} else {
		defer store.Close()
		history = store.HistoryStore()
	}

	decoders := decoder.NewRegistry(psd.New())
	encoder := imaging.NewEncoder()
	packager := archive.NewZipPackager()
	saver := output.NewDirSaver("")

	newSession := func() driving.SessionService {
		return services.NewSessionService(decoders, encoder, packager, saver, settings, history)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Session:    newSession(),
		Settings:   settings,
		History:    services.NewHistoryService(history, settings),
		NewSession: newSession,
	})

	return cli.Execute(ctx)
}
