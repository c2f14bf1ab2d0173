// Package pdf provides the Normaliser for PDF documents. Text runs come
// from a TextRunSource and are turned into blocks page by page by the
// document assembler.
package pdf

import (
	"context"
	"fmt"
	"sync"
	"unicode"

	"github.com/custodia-labs/docblocks/internal/assembler"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/logger"
	"github.com/custodia-labs/docblocks/internal/projector"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct {
	source    driven.TextRunSource
	assembler *assembler.Assembler
	inspector driven.Inspector
}

// New creates a PDF normaliser. inspector may be nil.
func New(source driven.TextRunSource, asm *assembler.Assembler, inspector driven.Inspector) *Normaliser {
	if asm == nil {
		asm = assembler.New()
	}
	return &Normaliser{source: source, assembler: asm, inspector: inspector}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf", "application/x-pdf"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 60
}

// Normalise extracts and segments every page of the PDF.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error) {
	if raw == nil || len(raw.Content) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if n.source == nil {
		return nil, fmt.Errorf("pdf text source: %w", domain.ErrServiceUnavailable)
	}

	src, err := n.source.Open(ctx, raw.Content)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w: %w", domain.ErrParseFailed, err)
	}

	counted := &countingSource{PageSource: src}
	doc, err := n.assembler.Assemble(ctx, counted, domain.Metadata{
		SourceName: raw.Name,
		Format:     domain.FormatPDF,
		Title:      src.Title(),
	}, opts)
	if err != nil {
		return nil, err
	}

	md := doc.Metadata
	md.Quality = n.quality(ctx, raw.Content, counted, md.Pages)
	doc.SetMetadata(md)
	doc.Text = projector.PlainText(doc.Blocks)
	return doc, nil
}

func (n *Normaliser) quality(ctx context.Context, content []byte, counted *countingSource, pages int) *domain.Quality {
	q := &domain.Quality{}
	if n.inspector != nil {
		inspected, err := n.inspector.Inspect(ctx, content)
		if err != nil {
			logger.Warn("inspecting pdf: %v", err)
		} else if inspected != nil {
			q.HasImageStreams = inspected.HasImageStreams
		}
	}

	total, printable := counted.totals()
	if pages > 0 {
		q.CharsPerPage = float64(total) / float64(pages)
	}
	if total > 0 {
		q.PrintableRatio = float64(printable) / float64(total)
	}
	q.Evaluate()
	return q
}

// countingSource tallies extracted runes as pages are read.
type countingSource struct {
	driven.PageSource

	mu        sync.Mutex
	chars     int
	printable int
}

func (c *countingSource) Page(ctx context.Context, num int) (domain.Page, error) {
	page, err := c.PageSource.Page(ctx, num)
	if err != nil {
		return page, err
	}

	chars, printable := 0, 0
	for _, r := range page.Runs {
		for _, ch := range r.Text {
			if unicode.IsSpace(ch) {
				continue
			}
			chars++
			if unicode.IsPrint(ch) && ch != unicode.ReplacementChar {
				printable++
			}
		}
	}

	c.mu.Lock()
	c.chars += chars
	c.printable += printable
	c.mu.Unlock()
	return page, nil
}

func (c *countingSource) totals() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chars, c.printable
}
