package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
	"github.com/custodia-labs/docblocks/internal/logger"
	"github.com/custodia-labs/docblocks/internal/projector"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService parses documents and manages stored block sets.
type DocumentService struct {
	registry driven.NormaliserRegistry
	store    driven.BlockStore
}

// NewDocumentService creates a new document service. store may be nil, in
// which case nothing is persisted.
func NewDocumentService(registry driven.NormaliserRegistry, store driven.BlockStore) *DocumentService {
	return &DocumentService{
		registry: registry,
		store:    store,
	}
}

// Parse converts raw into a Document.
func (s *DocumentService) Parse(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error) {
	if raw == nil {
		return nil, fmt.Errorf("parsing document: %w", domain.ErrInvalidInput)
	}
	if s.registry == nil {
		return nil, fmt.Errorf("parsing document: no normalisers: %w", domain.ErrServiceUnavailable)
	}

	doc, err := s.registry.Normalise(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("parsed %q: %d blocks, %d pages", raw.Name, len(doc.Blocks), doc.Metadata.Pages)
	return doc, nil
}

// Ingest parses raw and replaces the stored blocks of documentID. Parse
// errors are returned; a failed save is logged and reported in the result.
func (s *DocumentService) Ingest(
	ctx context.Context,
	documentID string,
	raw *domain.RawDocument,
	opts domain.ParseOptions,
) (*driving.IngestResult, error) {
	if documentID == "" {
		return nil, fmt.Errorf("ingesting document: empty id: %w", domain.ErrInvalidInput)
	}

	doc, err := s.Parse(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	result := &driving.IngestResult{DocumentID: documentID, Document: doc}

	if s.store == nil {
		result.PersistErr = fmt.Errorf("no block store configured: %w", domain.ErrServiceUnavailable)
		logger.Warn("not saving %s: %v", documentID, result.PersistErr)
		return result, nil
	}

	if err := s.store.ReplaceBlocks(ctx, documentID, doc.Blocks); err != nil {
		result.PersistErr = err
		if errors.Is(err, domain.ErrSchemaAbsent) {
			logger.Warn("skipping save of %s: block table does not exist", documentID)
		} else {
			logger.Warn("saving blocks of %s: %v", documentID, err)
		}
		return result, nil
	}

	result.Persisted = true
	logger.Info("saved %d blocks for %s", len(doc.Blocks), documentID)
	return result, nil
}

// Blocks returns the stored blocks of documentID.
func (s *DocumentService) Blocks(ctx context.Context, documentID string) ([]domain.Block, error) {
	if s.store == nil {
		return nil, domain.ErrServiceUnavailable
	}
	return s.store.GetBlocks(ctx, documentID)
}

// Text returns the plain-text projection of the stored blocks of documentID.
func (s *DocumentService) Text(ctx context.Context, documentID string) (string, error) {
	blocks, err := s.Blocks(ctx, documentID)
	if err != nil {
		return "", err
	}
	return projector.PlainText(blocks), nil
}

// Delete removes the stored blocks of documentID.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.store == nil {
		return domain.ErrServiceUnavailable
	}
	return s.store.DeleteBlocks(ctx, documentID)
}

// List summarises stored documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	if s.store == nil {
		return nil, domain.ErrServiceUnavailable
	}
	return s.store.ListDocuments(ctx)
}
