// Package cli provides the docblocks command line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by main.
var (
	documentService driving.DocumentService
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docblocks",
	Short: "Turn documents into ordered content blocks",
	Long: `docblocks parses PDF, Markdown, HTML and plain text documents into an
ordered sequence of typed blocks (headings, paragraphs, lists, quotes,
tables, images and page previews) and a plain-text projection.

Parsed block sets can be stored in a local SQLite database and served
over HTTP or the Model Context Protocol.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Config holds the services the commands operate on.
type Config struct {
	DocumentService driving.DocumentService
	SettingsService driving.SettingsService
	Version         string
}

// Configure sets the services used by every command.
func Configure(cfg Config) {
	documentService = cfg.DocumentService
	settingsService = cfg.SettingsService
	if cfg.Version != "" {
		version = cfg.Version
	}
}

// Execute runs the root command. Command output goes to stdout and
// diagnostics to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.ExecuteContext(ctx)
}
