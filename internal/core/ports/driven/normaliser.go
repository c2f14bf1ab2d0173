package driven

import (
	"context"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// Normaliser turns a raw document of one format into a Document.
// Each normaliser handles specific MIME types and file extensions.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lower-case file extensions including the
	// dot, e.g. ".pdf".
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise parses raw into a complete Document, including its
	// plain-text projection.
	Normalise(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error)
}

// NormaliserRegistry selects the appropriate normaliser for a document.
// It maintains a priority-ordered list of normalisers and dispatches
// based on MIME type, then file extension, then the fallback.
type NormaliserRegistry interface {
	// Normalise parses raw using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types with a dedicated normaliser.
	SupportedMIMETypes() []string
}
