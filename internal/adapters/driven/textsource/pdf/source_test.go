package pdf

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// buildPDF writes a single-page PDF whose page inherits its MediaBox from
// the page tree, with content as the page content stream.
func buildPDF(content string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 800] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Title (Test Document) >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestSource_Open(t *testing.T) {
	content := "BT /F1 30 Tf 72 700 Td (Chapter One) Tj ET\n" +
		"BT /F1 12 Tf 72 650 Td (Some body text.) Tj ET"

	src, err := New().Open(context.Background(), buildPDF(content))
	require.NoError(t, err)

	assert.Equal(t, 1, src.NumPages())
	assert.Equal(t, "Test Document", src.Title())

	page, err := src.Page(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 800.0, page.Height)
	assert.Equal(t, 612.0, page.Width)
	require.Len(t, page.Runs, 2)
	assert.Equal(t, "Chapter One", page.Runs[0].Text)
	assert.InDelta(t, 700, page.Runs[0].Y, 0.01)
	assert.InDelta(t, 30, page.Runs[0].FontSize, 0.01)
	assert.Equal(t, "Some body text.", page.Runs[1].Text)
	assert.InDelta(t, 12, page.Runs[1].FontSize, 0.01)
}

func TestSource_PageOutOfRange(t *testing.T) {
	src, err := New().Open(context.Background(), buildPDF("BT /F1 12 Tf 72 700 Td (x) Tj ET"))
	require.NoError(t, err)

	_, err = src.Page(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = src.Page(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_OpenGarbage(t *testing.T) {
	_, err := New().Open(context.Background(), []byte("this is not a pdf"))
	assert.Error(t, err)
}

func glyphs(s string, x, y, size, advance float64) []pdf.Text {
	out := make([]pdf.Text, 0, len(s))
	for _, r := range s {
		out = append(out, pdf.Text{S: string(r), X: x, Y: y, FontSize: size, W: advance})
		x += advance
	}
	return out
}

func TestMergeGlyphs(t *testing.T) {
	s := New()

	t.Run("joins glyphs on one baseline", func(t *testing.T) {
		runs := s.mergeGlyphs(glyphs("Hello", 10, 700, 12, 6))
		require.Len(t, runs, 1)
		assert.Equal(t, "Hello", runs[0].Text)
		assert.Equal(t, 700.0, runs[0].Y)
		assert.Equal(t, 12.0, runs[0].FontSize)
	})

	t.Run("inserts a space at a word gap", func(t *testing.T) {
		texts := append(glyphs("Hello", 10, 700, 12, 6), glyphs("World", 50, 700, 12, 6)...)
		runs := s.mergeGlyphs(texts)
		require.Len(t, runs, 1)
		assert.Equal(t, "Hello World", runs[0].Text)
	})

	t.Run("splits on baseline change", func(t *testing.T) {
		texts := append(glyphs("one", 10, 700, 12, 6), glyphs("two", 10, 680, 12, 6)...)
		runs := s.mergeGlyphs(texts)
		require.Len(t, runs, 2)
		assert.Equal(t, "one", runs[0].Text)
		assert.Equal(t, "two", runs[1].Text)
		assert.Equal(t, 680.0, runs[1].Y)
	})

	t.Run("splits on font size change", func(t *testing.T) {
		texts := append(glyphs("Big", 10, 700, 24, 12), glyphs("small", 50, 700, 10, 5)...)
		runs := s.mergeGlyphs(texts)
		require.Len(t, runs, 2)
		assert.Equal(t, 24.0, runs[0].FontSize)
		assert.Equal(t, 10.0, runs[1].FontSize)
	})

	t.Run("missing font size defaults", func(t *testing.T) {
		runs := s.mergeGlyphs(glyphs("x", 10, 700, 0, 0))
		require.Len(t, runs, 1)
		assert.Equal(t, domain.DefaultFontSize, runs[0].FontSize)
	})

	t.Run("normalises to NFC", func(t *testing.T) {
		texts := []pdf.Text{
			{S: "e", X: 10, Y: 700, FontSize: 12, W: 6},
			{S: "\u0301", X: 16, Y: 700, FontSize: 12, W: 0},
		}
		runs := s.mergeGlyphs(texts)
		require.Len(t, runs, 1)
		assert.Equal(t, "\u00e9", runs[0].Text)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, s.mergeGlyphs(nil))
	})
}

func TestGuard_RecoversPanic(t *testing.T) {
	err := guard(func() error { panic("bad xref") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad xref")
}
