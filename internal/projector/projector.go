// Package projector flattens a block sequence into plain text.
package projector

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// Labels used for images without caption or alt text.
const (
	ImageLabel       = "Image"
	PagePreviewLabel = "Page preview"
)

// PlainText renders blocks as text: one serialisation per block, separated by
// a blank line. Metadata blocks contribute nothing.
func PlainText(blocks []domain.Block) string {
	p := &textVisitor{}
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		p.out = ""
		b.Accept(p)
		if p.out != "" {
			parts = append(parts, p.out)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// textVisitor renders a single block into out.
type textVisitor struct {
	out string
}

var _ domain.BlockVisitor = (*textVisitor)(nil)

func (v *textVisitor) VisitMetadata(domain.MetadataBlock) {}

func (v *textVisitor) VisitHeading(b domain.HeadingBlock) {
	level := b.Level
	if level < 1 {
		level = 1
	}
	v.out = strings.Repeat("#", level) + " " + b.Text
}

func (v *textVisitor) VisitParagraph(b domain.ParagraphBlock) {
	v.out = b.Text
}

func (v *textVisitor) VisitList(b domain.ListBlock) {
	lines := make([]string, len(b.Items))
	for i, item := range b.Items {
		lines[i] = "• " + item
	}
	v.out = strings.Join(lines, "\n")
}

func (v *textVisitor) VisitQuote(b domain.QuoteBlock) {
	v.out = "> " + b.Text
}

func (v *textVisitor) VisitTable(b domain.TableBlock) {
	rows := make([]string, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = strings.Join(row, " | ")
	}
	v.out = strings.Join(rows, "\n")
}

func (v *textVisitor) VisitImage(b domain.ImageBlock) {
	v.out = imageLine(b.Page, b.Image, ImageLabel)
}

func (v *textVisitor) VisitPagePreview(b domain.PagePreviewBlock) {
	v.out = imageLine(b.Page, b.Image, PagePreviewLabel)
}

func imageLine(page int, img domain.ImagePayload, fallback string) string {
	label := img.Caption
	if label == "" {
		label = img.Alt
	}
	if label == "" {
		label = fallback
	}
	if page > 0 {
		return fmt.Sprintf("[Image page %d - %s]", page, label)
	}
	return fmt.Sprintf("[Image - %s]", label)
}
