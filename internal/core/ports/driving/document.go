package driving

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// DocumentService parses documents and manages their stored blocks.
type DocumentService interface {
	// Parse converts raw into a Document without storing it.
	Parse(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error)

	// Ingest parses raw and replaces the stored blocks of documentID.
	// Persistence failures do not fail the call; they are reported in
	// the result.
	Ingest(ctx context.Context, documentID string, raw *domain.RawDocument, opts domain.ParseOptions) (*IngestResult, error)

	// Blocks returns the stored blocks of a document.
	Blocks(ctx context.Context, documentID string) ([]domain.Block, error)

	// Text returns the plain-text projection of a stored document.
	Text(ctx context.Context, documentID string) (string, error)

	// Delete removes the stored blocks of a document.
	Delete(ctx context.Context, documentID string) error

	// List summarises stored documents.
	List(ctx context.Context) ([]domain.DocumentSummary, error)
}

// IngestResult reports the outcome of DocumentService.Ingest.
type IngestResult struct {
	// DocumentID is the id the blocks were stored under.
	DocumentID string

	// Document is the parsed document.
	Document *domain.Document

	// Persisted is true when the blocks were stored.
	Persisted bool

	// PersistErr is the reason blocks were not stored, if any.
	PersistErr error
}

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() domain.Settings

	// Keys returns every recognised setting key, sorted.
	Keys() []string

	// Value returns the effective value of key formatted as text.
	Value(key string) (string, error)

	// Set parses and stores a single setting by its dotted key.
	Set(key, value string) error

	// Path returns where settings are stored.
	Path() string
}

// InboxService ingests documents dropped into a watched directory.
type InboxService interface {
	// Run processes changes until ctx is cancelled.
	Run(ctx context.Context) error
}
