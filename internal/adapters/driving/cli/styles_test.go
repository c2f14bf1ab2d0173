package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Border))
	assert.NotEqual(t, theme.Primary, theme.Secondary)
}

func TestNewStyles(t *testing.T) {
	theme := DefaultTheme()
	assert.Equal(t, theme, NewStyles(theme).Theme())
	assert.NotNil(t, NewStyles(nil).Theme())
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}

func TestRenderBlocks(t *testing.T) {
	md := domain.Metadata{Pages: 2, SourceName: "report.pdf", Format: domain.FormatPDF, Quality: &domain.Quality{NeedsOCR: true}}
	blocks := domain.NewDocument(md, []domain.Block{
		domain.HeadingBlock{Text: "Intro", Level: 2, Page: 1},
		domain.ListBlock{Items: []string{"a", "b"}, Page: 1},
		domain.TableBlock{Rows: [][]string{{"k", "v"}, {"x", "1"}}, Page: 2},
		domain.PagePreviewBlock{Image: domain.ImagePayload{Width: 320, Height: 414, Alt: "Page 2 preview"}, Page: 2},
		domain.ImageBlock{Image: domain.ImagePayload{Caption: "A chart"}, Page: 2},
	}).Blocks

	out := renderBlocks(blocks, NewStyles(nil))

	assert.Contains(t, out, "report.pdf · pdf · 2 page(s) · needs OCR")
	assert.Contains(t, out, "── page 1 ──")
	assert.Contains(t, out, "## Intro")
	assert.Contains(t, out, "• a")
	assert.Contains(t, out, "── page 2 ──")
	assert.Contains(t, out, "k │ v")
	assert.Contains(t, out, "[preview 320x414] Page 2 preview")
	assert.Contains(t, out, "[image] A chart")
}
