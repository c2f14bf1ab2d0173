package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// ParseInput is the input schema for the parse_document tool.
type ParseInput struct {
	Path          string `json:"path,omitempty" jsonschema:"local file to parse; used when content_base64 is empty"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"document bytes, base64 encoded"`
	Name          string `json:"name,omitempty" jsonschema:"file name hint such as report.pdf"`
	MIMEType      string `json:"mime_type,omitempty" jsonschema:"media type hint such as application/pdf"`
	PreviewPages  int    `json:"preview_pages,omitempty" jsonschema:"maximum pages to render previews for (0 = configured default)"`
	SkipPreviews  bool   `json:"skip_previews,omitempty" jsonschema:"do not render page previews"`
	Save          bool   `json:"save,omitempty" jsonschema:"store the blocks for later retrieval"`
	DocumentID    string `json:"document_id,omitempty" jsonschema:"id to store the blocks under; generated when empty"`
}

// ParseOutput is the output schema for the parse_document tool.
type ParseOutput struct {
	DocumentID string         `json:"document_id,omitempty"`
	Persisted  bool           `json:"persisted"`
	SaveError  string         `json:"save_error,omitempty"`
	Metadata   map[string]any `json:"metadata"`
	Blocks     []any          `json:"blocks"`
	Text       string         `json:"text"`
}

// DocumentInput identifies a stored document.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of a stored document"`
}

// BlocksOutput is the output schema for the get_blocks tool.
type BlocksOutput struct {
	DocumentID string `json:"document_id"`
	Blocks     []any  `json:"blocks"`
	Count      int    `json:"count"`
}

// TextOutput is the output schema for the get_text tool.
type TextOutput struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_document",
		Description: "Parse a PDF, Markdown, HTML or text document into ordered content blocks and plain text",
	}, s.handleParse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_blocks",
		Description: "Return the stored content blocks of a document",
	}, s.handleGetBlocks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_text",
		Description: "Return the plain text of a stored document",
	}, s.handleGetText)
}

// handleParse handles the parse_document tool invocation.
func (s *Server) handleParse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ParseInput,
) (*mcp.CallToolResult, ParseOutput, error) {
	raw, err := rawDocument(input)
	if err != nil {
		return nil, ParseOutput{}, err
	}

	opts := domain.ParseOptions{MaxPreviewPages: input.PreviewPages, SkipPreviews: input.SkipPreviews}
	if opts.MaxPreviewPages == 0 && s.ports.Options != nil {
		opts.MaxPreviewPages = s.ports.Options().PreviewPages
	}

	var (
		doc    *domain.Document
		output ParseOutput
	)
	if input.Save {
		id := input.DocumentID
		if id == "" {
			id = uuid.NewString()
		}
		result, err := s.ports.Document.Ingest(ctx, id, raw, opts)
		if err != nil {
			return nil, ParseOutput{}, err
		}
		doc = result.Document
		output.DocumentID = result.DocumentID
		output.Persisted = result.Persisted
		if result.PersistErr != nil {
			output.SaveError = result.PersistErr.Error()
		}
	} else {
		doc, err = s.ports.Document.Parse(ctx, raw, opts)
		if err != nil {
			return nil, ParseOutput{}, err
		}
	}

	if output.Blocks, err = toAny(doc.Blocks); err != nil {
		return nil, ParseOutput{}, err
	}
	if err := convert(doc.Metadata, &output.Metadata); err != nil {
		return nil, ParseOutput{}, err
	}
	output.Text = doc.Text
	return nil, output, nil
}

// handleGetBlocks handles the get_blocks tool invocation.
func (s *Server) handleGetBlocks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, BlocksOutput, error) {
	blocks, err := s.ports.Document.Blocks(ctx, input.DocumentID)
	if err != nil {
		return nil, BlocksOutput{}, err
	}

	out, err := toAny(domain.Blocks(blocks))
	if err != nil {
		return nil, BlocksOutput{}, err
	}
	return nil, BlocksOutput{DocumentID: input.DocumentID, Blocks: out, Count: len(out)}, nil
}

// handleGetText handles the get_text tool invocation.
func (s *Server) handleGetText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, TextOutput, error) {
	text, err := s.ports.Document.Text(ctx, input.DocumentID)
	if err != nil {
		return nil, TextOutput{}, err
	}
	return nil, TextOutput{DocumentID: input.DocumentID, Text: text}, nil
}

// rawDocument builds the document to parse from inline content or a path.
func rawDocument(input ParseInput) (*domain.RawDocument, error) {
	raw := &domain.RawDocument{Name: input.Name, MIMEType: input.MIMEType}

	switch {
	case input.ContentBase64 != "":
		content, err := base64.StdEncoding.DecodeString(input.ContentBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding content_base64: %w: %w", domain.ErrInvalidInput, err)
		}
		raw.Content = content
	case input.Path != "":
		content, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", input.Path, err)
		}
		raw.Content = content
		if raw.Name == "" {
			raw.Name = filepath.Base(input.Path)
		}
	default:
		return nil, fmt.Errorf("one of path or content_base64 is required: %w", domain.ErrInvalidInput)
	}
	return raw, nil
}

// toAny converts blocks to their generic JSON form for structured output.
func toAny(blocks domain.Blocks) ([]any, error) {
	out := []any{}
	if err := convert(blocks, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func convert(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding output: %w", err)
	}
	return nil
}
