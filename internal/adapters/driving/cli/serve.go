package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docblocks/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/docblocks/internal/core/domain"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing parsing and stored blocks.

Endpoints:
  POST   /v1/parse                  parse an upload
  POST   /v1/documents/{id}         parse an upload and store it
  GET    /v1/documents              list stored documents
  GET    /v1/documents/{id}/blocks  stored blocks
  GET    /v1/documents/{id}/text    plain text
  DELETE /v1/documents/{id}         delete stored blocks
  GET    /healthz                   liveness

Examples:
  docblocks serve
  docblocks serve --addr 127.0.0.1:9000
  curl --data-binary @report.pdf -H 'Content-Type: application/pdf' localhost:8080/v1/parse`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	settings := domain.DefaultSettings()
	if settingsService != nil {
		settings = settingsService.Get()
	}
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	server, err := httpapi.NewServer(documentService,
		httpapi.WithMaxUploadMB(settings.Server.MaxUploadMB),
		httpapi.WithPreviewPages(settings.Parse.PreviewPages),
	)
	if err != nil {
		return err
	}

	cmd.Printf("HTTP API listening on %s\n", addr)
	return server.ListenAndServe(cmd.Context(), addr)
}
