package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextRunSource = (*Source)(nil)

// Page dimensions assumed when a page declares no usable MediaBox (US Letter).
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// maxParentDepth bounds the walk up the page tree for inherited attributes.
const maxParentDepth = 32

// Source opens PDFs with github.com/ledongthuc/pdf.
type Source struct {
	wordSpace     float64
	lineTolerance float64
}

// Option configures a Source.
type Option func(*Source)

// WithWordSpace sets the horizontal gap, as a multiple of the font size,
// above which a space is inserted between glyphs.
func WithWordSpace(multiplier float64) Option {
	return func(s *Source) { s.wordSpace = multiplier }
}

// New creates a PDF text run source.
func New(opts ...Option) *Source {
	s := &Source{wordSpace: 0.25, lineTolerance: 1.0}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open parses content as a PDF.
func (s *Source) Open(_ context.Context, content []byte) (driven.PageSource, error) {
	var reader *pdf.Reader
	err := guard(func() error {
		var err error
		reader, err = pdf.NewReader(bytes.NewReader(content), int64(len(content)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	var pages int
	if err := guard(func() error {
		pages = reader.NumPage()
		return nil
	}); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	return &document{reader: reader, pages: pages, source: s}, nil
}

// document is an opened PDF. The reader is not documented as safe for
// concurrent use, so page access is serialised.
type document struct {
	mu     sync.Mutex
	reader *pdf.Reader
	pages  int
	source *Source
}

func (d *document) NumPages() int {
	return d.pages
}

func (d *document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var title string
	_ = guard(func() error {
		title = strings.TrimSpace(d.reader.Trailer().Key("Info").Key("Title").Text())
		return nil
	})
	return title
}

func (d *document) Page(_ context.Context, n int) (domain.Page, error) {
	if n < 1 || n > d.pages {
		return domain.Page{}, fmt.Errorf("page %d of %d: %w", n, d.pages, domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var (
		texts         []pdf.Text
		width, height float64
	)
	err := guard(func() error {
		p := d.reader.Page(n)
		if p.V.IsNull() {
			return fmt.Errorf("page %d: %w", n, domain.ErrNotFound)
		}
		width, height = pageSize(p)
		texts = p.Content().Text
		return nil
	})
	if err != nil {
		return domain.Page{Number: n, Width: width, Height: height}, err
	}

	return domain.Page{
		Number: n,
		Width:  width,
		Height: height,
		Runs:   d.source.mergeGlyphs(texts),
	}, nil
}

// mergeGlyphs joins the per-glyph output of the PDF reader into runs: one
// run per stretch of glyphs sharing a baseline and font size, in content
// stream order. A space is inserted where the horizontal gap between glyphs
// exceeds the word spacing threshold.
func (s *Source) mergeGlyphs(texts []pdf.Text) []domain.TextRun {
	var (
		runs    []domain.TextRun
		b       strings.Builder
		cur     pdf.Text
		end     float64
		started bool
	)

	emit := func() {
		if started && b.Len() > 0 {
			runs = append(runs, domain.NewTextRun(norm.NFC.String(b.String()), cur.Y, cur.FontSize))
		}
		b.Reset()
		started = false
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if started && !s.sameRun(cur, end, t) {
			emit()
		}
		if !started {
			cur = t
			end = t.X
			started = true
		}

		if gap := t.X - end; b.Len() > 0 && gap > s.wordSpace*cur.FontSize &&
			!strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	emit()
	return runs
}

// sameRun reports whether glyph t continues the run started by cur whose
// last glyph ended at x = end.
func (s *Source) sameRun(cur pdf.Text, end float64, t pdf.Text) bool {
	if math.Abs(t.Y-cur.Y) > s.lineTolerance {
		return false
	}
	if math.Abs(t.FontSize-cur.FontSize) > 0.5 {
		return false
	}
	// A jump back to the left starts a new line at the same baseline.
	return t.X >= end-cur.FontSize
}

// pageSize returns the MediaBox dimensions of p, following the page tree
// for an inherited box, or the defaults when none is usable.
func pageSize(p pdf.Page) (float64, float64) {
	v := p.V
	for i := 0; i < maxParentDepth && !v.IsNull(); i++ {
		if w, h, ok := mediaBox(v.Key("MediaBox")); ok {
			return w, h
		}
		v = v.Key("Parent")
	}
	return DefaultPageWidth, DefaultPageHeight
}

func mediaBox(box pdf.Value) (float64, float64, bool) {
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return 0, 0, false
	}
	var c [4]float64
	for i := range c {
		val := box.Index(i)
		switch val.Kind() {
		case pdf.Integer:
			c[i] = float64(val.Int64())
		case pdf.Real:
			c[i] = val.Float64()
		default:
			return 0, 0, false
		}
	}
	w, h := math.Abs(c[2]-c[0]), math.Abs(c[3]-c[1])
	if w == 0 || h == 0 {
		return 0, 0, false
	}
	return w, h, true
}

// guard runs fn, converting a panic inside the PDF reader into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	return fn()
}
