package mcp

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document   *domain.Document
	blocks     []domain.Block
	text       string
	summaries  []domain.DocumentSummary
	persistErr error
	err        error

	// Recorded arguments.
	lastID   string
	lastRaw  *domain.RawDocument
	lastOpts domain.ParseOptions
}

func (m *mockDocumentService) Parse(_ context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error) {
	m.lastRaw, m.lastOpts = raw, opts
	return m.document, m.err
}

func (m *mockDocumentService) Ingest(
	_ context.Context,
	id string,
	raw *domain.RawDocument,
	opts domain.ParseOptions,
) (*driving.IngestResult, error) {
	m.lastID, m.lastRaw, m.lastOpts = id, raw, opts
	if m.err != nil {
		return nil, m.err
	}
	return &driving.IngestResult{
		DocumentID: id,
		Document:   m.document,
		Persisted:  m.persistErr == nil,
		PersistErr: m.persistErr,
	}, nil
}

func (m *mockDocumentService) Blocks(_ context.Context, id string) ([]domain.Block, error) {
	m.lastID = id
	return m.blocks, m.err
}

func (m *mockDocumentService) Text(_ context.Context, id string) (string, error) {
	m.lastID = id
	return m.text, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

func (m *mockDocumentService) List(context.Context) ([]domain.DocumentSummary, error) {
	return m.summaries, m.err
}

func sampleDocument() *domain.Document {
	doc := domain.NewDocument(domain.Metadata{Pages: 1, SourceName: "a.md", Format: domain.FormatMarkdown}, []domain.Block{
		domain.HeadingBlock{Text: "Title", Level: 1, Page: 1},
		domain.ParagraphBlock{Text: "Body", Page: 1},
	})
	doc.Text = "# Title\n\nBody"
	return doc
}
