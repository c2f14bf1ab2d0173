package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// Inspector examines a PDF's structure for signals that text extraction
// alone cannot give, such as embedded image streams.
type Inspector interface {
	// Inspect returns a partially filled Quality. Text-derived fields are
	// left for the caller.
	Inspect(ctx context.Context, content []byte) (*domain.Quality, error)
}
