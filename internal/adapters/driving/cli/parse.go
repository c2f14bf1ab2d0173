package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/projector"
)

var (
	parseMIME         string
	parseName         string
	parsePreviewPages int
	parseNoPreviews   bool
	parseOutput       string
	parseSave         bool
	parseID           string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a document into blocks",
	Long: `Parse a document into ordered content blocks.

The format is chosen from --mime, then the file extension; anything
unrecognised is read as plain text. Use "-" to read from stdin.

Examples:
  docblocks parse report.pdf
  docblocks parse report.pdf --output json --preview-pages 2
  docblocks parse notes.md --save --id notes
  cat page.html | docblocks parse - --mime text/html`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseMIME, "mime", "", "MIME type of the input")
	parseCmd.Flags().StringVar(&parseName, "name", "", "file name hint (defaults to the file's base name)")
	parseCmd.Flags().IntVar(&parsePreviewPages, "preview-pages", 0, "maximum pages to render previews for (0 = configured default)")
	parseCmd.Flags().BoolVar(&parseNoPreviews, "no-previews", false, "skip page previews")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", outputText, "output format: text, json or yaml")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "store the blocks")
	parseCmd.Flags().StringVar(&parseID, "id", "", "document id to store under (default: random UUID)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := validateOutput(parseOutput); err != nil {
		return err
	}

	raw, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	opts := domain.ParseOptions{
		MaxPreviewPages: parsePreviewPages,
		SkipPreviews:    parseNoPreviews,
	}
	if !cmd.Flags().Changed("preview-pages") && settingsService != nil {
		opts.MaxPreviewPages = settingsService.Get().Parse.PreviewPages
	}

	ctx := cmd.Context()
	var doc *domain.Document
	if parseSave {
		id := parseID
		if id == "" {
			id = uuid.NewString()
		}
		result, err := documentService.Ingest(ctx, id, raw, opts)
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}
		doc = result.Document
		if result.Persisted {
			cmd.PrintErrf("Saved %d blocks as %s\n", len(doc.Blocks), result.DocumentID)
		} else {
			cmd.PrintErrf("Warning: blocks not saved: %v\n", result.PersistErr)
		}
	} else {
		doc, err = documentService.Parse(ctx, raw, opts)
		if err != nil {
			return fmt.Errorf("failed to parse document: %w", err)
		}
	}

	if parseOutput != outputText {
		return writeStructured(cmd, parseOutput, doc)
	}
	printBlocks(cmd, doc.Blocks, doc.Text)
	return nil
}

// readInput loads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (*domain.RawDocument, error) {
	var (
		content []byte
		err     error
		name    = parseName
	)
	if path == "-" {
		content, err = io.ReadAll(cmd.InOrStdin())
	} else {
		content, err = os.ReadFile(path)
		if name == "" {
			name = filepath.Base(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return &domain.RawDocument{Name: name, MIMEType: parseMIME, Content: content}, nil
}

// printBlocks writes styled blocks to a terminal and the plain-text
// projection otherwise.
func printBlocks(cmd *cobra.Command, blocks []domain.Block, text string) {
	if isTerminal(cmd.OutOrStdout()) {
		cmd.Println(renderBlocks(blocks, NewStyles(nil)))
		return
	}
	if text == "" {
		text = projector.PlainText(blocks)
	}
	cmd.Println(text)
}
