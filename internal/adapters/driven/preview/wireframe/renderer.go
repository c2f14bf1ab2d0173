// Package wireframe implements the PagePreviewer port by drawing the text
// runs of a page onto a page-sized canvas with golang.org/x/image, then
// scaling the result to the configured preview width and encoding it as PNG.
//
// It needs nothing but the extracted runs, so it works without a PDF
// rasteriser. Runs are placed at their baseline; horizontal layout is not
// reproduced.
package wireframe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.PagePreviewer = (*Renderer)(nil)

// Page size used when the page does not report one (US Letter, in points).
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
	margin            = 36
	headingFontSize   = 16.0
)

var (
	paper       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ink         = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	headingWash = color.RGBA{R: 0xdd, G: 0xe6, B: 0xf5, A: 0xff}
)

// Renderer draws wireframe page previews.
type Renderer struct {
	width int
}

// New creates a Renderer producing previews width pixels wide.
func New(width int) *Renderer {
	if width <= 0 {
		width = domain.DefaultPreviewWidth
	}
	return &Renderer{width: width}
}

// Render draws page and returns it as a PNG payload.
func (r *Renderer) Render(ctx context.Context, page domain.Page) (*domain.ImagePayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, ph := int(page.Width), int(page.Height)
	if pw <= 0 || ph <= 0 {
		pw, ph = defaultPageWidth, defaultPageHeight
	}

	canvas := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	maxChars := (pw - 2*margin) / face.Advance
	if maxChars <= 0 {
		return nil, fmt.Errorf("page %d is too narrow to preview: %w", page.Number, domain.ErrPreviewUnavailable)
	}

	d := &font.Drawer{Dst: canvas, Src: image.NewUniform(ink), Face: face}
	for _, run := range page.Runs {
		y := ph - int(run.Y)
		if y < face.Height || y > ph {
			continue
		}
		if run.FontSize >= headingFontSize {
			wash := image.Rect(margin-4, y-face.Ascent-2, pw-margin+4, y+face.Descent+2)
			draw.Draw(canvas, wash, image.NewUniform(headingWash), image.Point{}, draw.Src)
		}
		d.Dot = fixed.P(margin, y)
		d.DrawString(truncate(run.Text, maxChars))
	}

	height := ph * r.width / pw
	if height <= 0 {
		height = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, r.width, height))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding preview of page %d: %w", page.Number, err)
	}

	return &domain.ImagePayload{
		Data:     buf.Bytes(),
		MIMEType: "image/png",
		Width:    r.width,
		Height:   height,
		Alt:      fmt.Sprintf("Page %d preview", page.Number),
	}, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
