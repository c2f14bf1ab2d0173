package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docblocks/internal/connectors/inbox"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/services"
)

var (
	watchScan bool
	watchRate float64
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest documents dropped into a directory",
	Long: `Watch a directory and store the blocks of every file created or
changed in it. Removing a file deletes its blocks. Hidden files and
directories are ignored.

Each file is stored under an id derived from its absolute path, so
editing a file replaces its previous blocks.

Examples:
  docblocks watch ~/inbox
  docblocks watch ~/inbox --scan --rate 5`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchScan, "scan", false, "ingest files already in the directory first")
	watchCmd.Flags().Float64Var(&watchRate, "rate", 0, "maximum files per second (0 = configured default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	watcher := inbox.New(args[0])
	if err := watcher.Validate(); err != nil {
		return err
	}
	defer watcher.Close()

	settings := domain.DefaultSettings()
	if settingsService != nil {
		settings = settingsService.Get()
	}
	rate := watchRate
	if rate <= 0 {
		rate = settings.Watch.Rate
	}

	opts := []services.InboxOption{
		services.WithRate(rate),
		services.WithParseOptions(domain.ParseOptions{MaxPreviewPages: settings.Parse.PreviewPages}),
		services.WithObserver(func(ev services.InboxEvent) { printInboxEvent(cmd, ev) }),
	}
	if watchScan {
		opts = append(opts, services.WithInitialScan())
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", watcher.Root())
	if err := services.NewInboxService(documentService, watcher, opts...).Run(cmd.Context()); err != nil {
		return fmt.Errorf("watching %s: %w", watcher.Root(), err)
	}
	return nil
}

func printInboxEvent(cmd *cobra.Command, ev services.InboxEvent) {
	switch {
	case ev.Err != nil:
		cmd.PrintErrf("  ✗ %s: %v\n", ev.Path, ev.Err)
	case ev.Type == domain.ChangeDeleted:
		cmd.Printf("  - %s\n", ev.Path)
	case ev.Result != nil && !ev.Result.Persisted:
		cmd.PrintErrf("  ! %s parsed but not saved: %v\n", ev.Path, ev.Result.PersistErr)
	default:
		blocks := 0
		if ev.Result != nil && ev.Result.Document != nil {
			blocks = len(ev.Result.Document.Blocks)
		}
		cmd.Printf("  + %s -> %s (%d blocks)\n", ev.Path, ev.DocumentID, blocks)
	}
}
