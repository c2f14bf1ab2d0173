// Command docblocks parses documents into ordered content blocks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docblocks/internal/adapters/driven/ai"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/inspect/pdfcpu"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/preview/wireframe"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/storage/sqlite"
	pdfsource "github.com/custodia-labs/docblocks/internal/adapters/driven/textsource/pdf"
	"github.com/custodia-labs/docblocks/internal/adapters/driving/cli"
	"github.com/custodia-labs/docblocks/internal/assembler"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/core/services"
	"github.com/custodia-labs/docblocks/internal/logger"
	"github.com/custodia-labs/docblocks/internal/normalisers"
	"github.com/custodia-labs/docblocks/internal/normalisers/html"
	"github.com/custodia-labs/docblocks/internal/normalisers/markdown"
	pdfnormaliser "github.com/custodia-labs/docblocks/internal/normalisers/pdf"
	"github.com/custodia-labs/docblocks/internal/normalisers/plaintext"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}
	settings := services.LoadSettings(configStore)

	blockStore, closeStore := openBlockStore(settings.Storage)
	defer closeStore()

	registry := normalisers.NewRegistry(
		pdfnormaliser.New(pdfsource.New(), newAssembler(ctx, settings), pdfcpu.New()),
		markdown.New(),
		html.New(),
		plaintext.New(),
	)

	cli.Configure(cli.Config{
		DocumentService: services.NewDocumentService(registry, blockStore),
		SettingsService: services.NewSettingsService(configStore),
		Version:         version,
	})

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// openBlockStore opens the SQLite block store. When the database cannot be
// opened, blocks are kept in memory for the life of the process.
func openBlockStore(cfg domain.StorageSettings) (driven.BlockStore, func()) {
	opts := []sqlite.Option{sqlite.WithBatchSize(cfg.BatchSize)}
	if !cfg.Migrate {
		opts = append(opts, sqlite.WithoutMigrations())
	}

	store, err := sqlite.NewStore(cfg.DataDir, opts...)
	if err != nil {
		logger.Warn("block storage unavailable, blocks will not persist: %v", err)
		return memory.NewBlockStore(), func() {}
	}
	logger.Debug("block storage at %s", store.Path())
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing block storage: %v", err)
		}
	}
}

func newAssembler(ctx context.Context, settings domain.Settings) *assembler.Assembler {
	opts := []assembler.Option{
		assembler.WithConcurrency(settings.Parse.Concurrency),
		assembler.WithPreviewer(wireframe.New(settings.Preview.Width)),
	}

	captioner, err := ai.CreateAndValidateCaptioner(ctx, settings.Caption)
	switch {
	case err != nil:
		logger.Warn("captions disabled: %v", err)
	case captioner != nil:
		opts = append(opts, assembler.WithCaptioner(captioner))
	}
	return assembler.New(opts...)
}
