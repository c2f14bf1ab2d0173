package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// BlockStore persists the block set of a document.
type BlockStore interface {
	// ReplaceBlocks deletes every stored block for documentID, then stores
	// blocks in order. Returns an error wrapping domain.ErrSchemaAbsent when
	// the storage table does not exist.
	ReplaceBlocks(ctx context.Context, documentID string, blocks []domain.Block) error

	// GetBlocks returns the stored blocks for documentID in order.
	// Returns domain.ErrNotFound when none are stored.
	GetBlocks(ctx context.Context, documentID string) ([]domain.Block, error)

	// DeleteBlocks removes every stored block for documentID.
	DeleteBlocks(ctx context.Context, documentID string) error

	// ListDocuments summarises every stored block set.
	ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error)
}
