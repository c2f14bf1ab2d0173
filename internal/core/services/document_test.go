package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/normalisers"
	"github.com/custodia-labs/docblocks/internal/normalisers/markdown"
	"github.com/custodia-labs/docblocks/internal/normalisers/plaintext"
)

// failingStore wraps a memory store and fails every replacement with err.
type failingStore struct {
	*memory.BlockStore
	err error
}

func (f *failingStore) ReplaceBlocks(context.Context, string, []domain.Block) error {
	return f.err
}

func newTestRegistry() *normalisers.Registry {
	return normalisers.NewRegistry(plaintext.New(), markdown.New())
}

func markdownDoc() *domain.RawDocument {
	return &domain.RawDocument{Name: "notes.md", Content: []byte("# Title\n\nBody text.")}
}

func TestDocumentService_Parse(t *testing.T) {
	svc := NewDocumentService(newTestRegistry(), nil)

	doc, err := svc.Parse(context.Background(), markdownDoc(), domain.ParseOptions{})
	require.NoError(t, err)

	require.Len(t, doc.Blocks, 3)
	assert.Equal(t, domain.BlockMetadata, doc.Blocks[0].Kind())
	assert.Equal(t, domain.HeadingBlock{Text: "Title", Level: 1, Page: 1}, doc.Blocks[1])
	assert.Equal(t, "# Title\n\nBody text.", doc.Text)
}

func TestDocumentService_Parse_Errors(t *testing.T) {
	_, err := NewDocumentService(newTestRegistry(), nil).Parse(context.Background(), nil, domain.ParseOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewDocumentService(nil, nil).Parse(context.Background(), markdownDoc(), domain.ParseOptions{})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestDocumentService_IngestAndRead(t *testing.T) {
	store := memory.NewBlockStore()
	svc := NewDocumentService(newTestRegistry(), store)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, "doc-1", markdownDoc(), domain.ParseOptions{})
	require.NoError(t, err)
	assert.True(t, result.Persisted)
	assert.NoError(t, result.PersistErr)
	assert.Equal(t, "doc-1", result.DocumentID)

	blocks, err := svc.Blocks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Block(result.Document.Blocks), blocks)

	text, err := svc.Text(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, result.Document.Text, text)

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentSummary{{ID: "doc-1", Blocks: 3, Pages: 1}}, docs)

	require.NoError(t, svc.Delete(ctx, "doc-1"))
	_, err = svc.Text(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Ingest_SchemaAbsentSkipsSave(t *testing.T) {
	store := &failingStore{
		BlockStore: memory.NewBlockStore(),
		err:        errors.Join(errors.New("no such table: document_blocks"), domain.ErrSchemaAbsent),
	}
	svc := NewDocumentService(newTestRegistry(), store)

	result, err := svc.Ingest(context.Background(), "doc", markdownDoc(), domain.ParseOptions{})
	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.ErrorIs(t, result.PersistErr, domain.ErrSchemaAbsent)
	require.NotNil(t, result.Document)
	assert.Len(t, result.Document.Blocks, 3)
}

func TestDocumentService_Ingest_StoreFailureIsReported(t *testing.T) {
	store := &failingStore{BlockStore: memory.NewBlockStore(), err: errors.New("disk full")}
	svc := NewDocumentService(newTestRegistry(), store)

	result, err := svc.Ingest(context.Background(), "doc", markdownDoc(), domain.ParseOptions{})
	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.EqualError(t, result.PersistErr, "disk full")
}

func TestDocumentService_Ingest_NoStore(t *testing.T) {
	svc := NewDocumentService(newTestRegistry(), nil)

	result, err := svc.Ingest(context.Background(), "doc", markdownDoc(), domain.ParseOptions{})
	require.NoError(t, err)
	assert.False(t, result.Persisted)
	assert.ErrorIs(t, result.PersistErr, domain.ErrServiceUnavailable)

	_, err = svc.Blocks(context.Background(), "doc")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.ErrorIs(t, svc.Delete(context.Background(), "doc"), domain.ErrServiceUnavailable)
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestDocumentService_Ingest_Invalid(t *testing.T) {
	svc := NewDocumentService(newTestRegistry(), memory.NewBlockStore())

	_, err := svc.Ingest(context.Background(), "", markdownDoc(), domain.ParseOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(context.Background(), "doc", nil, domain.ParseOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
