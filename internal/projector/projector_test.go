package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

func TestPlainText_AllVariants(t *testing.T) {
	blocks := []domain.Block{
		domain.MetadataBlock{Metadata: domain.Metadata{Pages: 2}},
		domain.PagePreviewBlock{Page: 1},
		domain.HeadingBlock{Text: "Chapter One", Level: 1, Page: 1},
		domain.HeadingBlock{Text: "Section", Level: 3, Page: 1},
		domain.ParagraphBlock{Text: "Body text.", Page: 1},
		domain.ListBlock{Items: []string{"First", "Second"}, Page: 1},
		domain.QuoteBlock{Text: "Quoted.", Page: 2},
		domain.TableBlock{Rows: [][]string{{"a", "b"}, {"c", "d"}}, Page: 2},
		domain.ImageBlock{Page: 2, Image: domain.ImagePayload{Caption: "A chart", Alt: "ignored"}},
		domain.ImageBlock{Page: 2, Image: domain.ImagePayload{Alt: "Logo"}},
		domain.PagePreviewBlock{Page: 2, Image: domain.ImagePayload{Caption: "Page two"}},
	}

	want := "[Image page 1 - Page preview]\n\n" +
		"# Chapter One\n\n" +
		"### Section\n\n" +
		"Body text.\n\n" +
		"• First\n• Second\n\n" +
		"> Quoted.\n\n" +
		"a | b\nc | d\n\n" +
		"[Image page 2 - A chart]\n\n" +
		"[Image page 2 - Logo]\n\n" +
		"[Image page 2 - Page two]"

	assert.Equal(t, want, PlainText(blocks))
}

func TestPlainText_MetadataOnly(t *testing.T) {
	assert.Equal(t, "", PlainText([]domain.Block{domain.MetadataBlock{}}))
	assert.Equal(t, "", PlainText(nil))
}

func TestPlainText_ImageWithoutPage(t *testing.T) {
	got := PlainText([]domain.Block{domain.ImageBlock{}})
	assert.Equal(t, "[Image - Image]", got)
}

func TestPlainText_Idempotent(t *testing.T) {
	blocks := []domain.Block{
		domain.MetadataBlock{},
		domain.HeadingBlock{Text: "T", Level: 2, Page: 1},
		domain.ParagraphBlock{Text: "  padded  ", Page: 1},
		domain.ListBlock{Items: []string{"x"}, Page: 1},
	}

	first := PlainText(blocks)
	second := PlainText(blocks)
	assert.Equal(t, first, second)
	assert.Equal(t, "## T\n\n  padded  \n\n• x", first)
}

func TestPlainText_TrimsResult(t *testing.T) {
	got := PlainText([]domain.Block{domain.ParagraphBlock{Text: "\n hello \n", Page: 1}})
	assert.Equal(t, "hello", got)
}
