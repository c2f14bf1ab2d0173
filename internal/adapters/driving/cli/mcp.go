package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docblocks/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can parse
documents and read stored blocks.

Tools:
  parse_document  parse a file path or base64 content, optionally saving it
  get_blocks      stored blocks of a document
  get_text        plain text of a stored document

By default the server communicates over stdio using JSON-RPC. Use --port
to serve over streamable HTTP instead.

Examples:
  # Stdio mode (default)
  docblocks mcp serve

  # HTTP mode
  docblocks mcp serve --port 8090

Client configuration:
  {
    "mcpServers": {
      "docblocks": {
        "command": "/path/to/docblocks",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{Document: documentService}
	if settingsService != nil {
		ports.Options = func() mcp.ParseDefaults {
			return mcp.ParseDefaults{PreviewPages: settingsService.Get().Parse.PreviewPages}
		}
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
