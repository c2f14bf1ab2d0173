package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// ChangeSource reports file changes in a watched location.
type ChangeSource interface {
	// Watch starts watching and returns a channel of changes. The channel
	// is closed when ctx is cancelled or the source is closed.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Scan returns every file currently present as a ChangeCreated change.
	Scan(ctx context.Context) ([]domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}
