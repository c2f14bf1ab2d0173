package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// PagePreviewer renders a visual preview of one page.
// A failed render affects only that page.
type PagePreviewer interface {
	Render(ctx context.Context, page domain.Page) (*domain.ImagePayload, error)
}

// Captioner produces a short description of an image.
type Captioner interface {
	Caption(ctx context.Context, img domain.ImagePayload) (string, error)
}
