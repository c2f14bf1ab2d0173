package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// TextRunSource opens a document and exposes its pages as positioned text.
type TextRunSource interface {
	// Open parses content. A failure here means no text can be extracted
	// from the document at all.
	Open(ctx context.Context, content []byte) (PageSource, error)
}

// PageSource yields the text runs of an opened document, one page at a time.
// Implementations must be safe for concurrent calls to Page.
type PageSource interface {
	// NumPages returns the page count.
	NumPages() int

	// Page returns the runs of page n (1-based) in extraction order.
	Page(ctx context.Context, n int) (domain.Page, error)

	// Title returns the title declared by the document, or "".
	Title() string
}
