// Package assembler builds a Document from a paged text source.
//
// Pages are processed concurrently up to a configurable limit. Each page
// yields an optional preview followed by the blocks the layout segmenter
// produces for it; results are stitched together in page order, so the
// output does not depend on which page finishes first.
package assembler

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/layout"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// Assembler drives segmentation and preview rendering across pages.
type Assembler struct {
	previewer   driven.PagePreviewer
	captioner   driven.Captioner
	concurrency int
	now         func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPreviewer sets the page previewer. Without one no previews are made.
func WithPreviewer(p driven.PagePreviewer) Option {
	return func(a *Assembler) { a.previewer = p }
}

// WithCaptioner sets the captioner applied to rendered previews.
func WithCaptioner(c driven.Captioner) Option {
	return func(a *Assembler) { a.captioner = c }
}

// WithConcurrency sets how many pages are processed at once.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithClock overrides the extraction timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		concurrency: domain.DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble processes every page of src and returns the Document.
//
// md supplies the descriptive metadata (source name, format, title); page
// counts and the extraction time are filled in here. ctx is checked before
// each page starts. Once started a page runs to completion, and a
// cancelled ctx yields an error and no Document.
func (a *Assembler) Assemble(ctx context.Context, src driven.PageSource, md domain.Metadata, opts domain.ParseOptions) (*domain.Document, error) {
	if src == nil {
		return nil, fmt.Errorf("assembling document: %w", domain.ErrInvalidInput)
	}

	pages := src.NumPages()
	previewCap := opts.PreviewCap(pages)
	if a.previewer == nil {
		previewCap = 0
	}

	logger.Debug("assembling %d pages (previews for %d, concurrency %d)", pages, previewCap, a.concurrency)

	results := make([][]domain.Block, pages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for n := 1; n <= pages; n++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[n-1] = a.page(context.WithoutCancel(gctx), src, n, n <= previewCap)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	var content []domain.Block
	for _, blocks := range results {
		content = append(content, blocks...)
	}

	md.Pages = pages
	md.PreviewPages = previewCap
	md.ExtractedAt = a.now()
	return domain.NewDocument(md, content), nil
}

// page extracts, previews and segments page n. Extraction and preview
// failures are logged and leave the page without text or preview blocks.
func (a *Assembler) page(ctx context.Context, src driven.PageSource, n int, preview bool) []domain.Block {
	page, err := src.Page(ctx, n)
	if err != nil {
		logger.Warn("page %d: extracting text: %v", n, err)
		page = domain.Page{Number: n}
	}
	page.Number = n

	var blocks []domain.Block
	if preview {
		if img, ok := a.preview(ctx, page); ok {
			blocks = append(blocks, domain.PagePreviewBlock{Image: img, Page: n})
		}
	}
	return append(blocks, layout.Segment(page)...)
}

func (a *Assembler) preview(ctx context.Context, page domain.Page) (domain.ImagePayload, bool) {
	img, err := a.previewer.Render(ctx, page)
	if err != nil {
		logger.Warn("page %d: preview unavailable: %v", page.Number, err)
		return domain.ImagePayload{}, false
	}
	if img == nil {
		logger.Warn("page %d: preview unavailable: %v", page.Number, domain.ErrPreviewUnavailable)
		return domain.ImagePayload{}, false
	}

	out := *img
	if a.captioner != nil && out.Caption == "" {
		caption, err := a.captioner.Caption(ctx, out)
		if err != nil {
			logger.Warn("page %d: captioning preview: %v", page.Number, err)
		} else {
			out.Caption = caption
		}
	}
	return out, true
}
