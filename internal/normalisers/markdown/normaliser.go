package markdown

import (
	"context"
	"time"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/projector"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct {
	now func() time.Time
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts a Markdown document into blocks on a single page.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument, _ domain.ParseOptions) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	blocks, title := Parse(string(raw.Content))

	doc := domain.NewDocument(domain.Metadata{
		Pages:       1,
		SourceName:  raw.Name,
		ExtractedAt: n.now(),
		Format:      domain.FormatMarkdown,
		Title:       title,
	}, blocks)
	doc.Text = projector.PlainText(doc.Blocks)
	return doc, nil
}
