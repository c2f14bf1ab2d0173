package layout

import (
	"math"
	"regexp"
	"strings"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

const (
	// HeadingFontSize is the smallest font size treated as a heading line.
	HeadingFontSize = 16.0

	// BreakGap is the largest vertical distance between two runs that still
	// belong to the same block. Larger gaps start a new block.
	BreakGap = 8.0
)

var (
	bulletPrefix = regexp.MustCompile(`^[•·\-–]`)
	bulletStrip  = regexp.MustCompile(`^[•·\-–]\s*`)
)

// HeadingLevel maps a font size to a heading level from 1 to 4.
func HeadingLevel(fontSize float64) int {
	switch {
	case fontSize >= 28:
		return 1
	case fontSize >= 22:
		return 2
	case fontSize >= 18:
		return 3
	default:
		return 4
	}
}

// Segment groups the runs of one page into heading, paragraph and list blocks,
// in the order they are completed.
//
// Runs are consumed in extraction order. A vertical gap above BreakGap ends the
// current paragraph (and a pending list); a bullet line ends the paragraph and
// joins the list. A paragraph becomes a heading as soon as any of its lines is
// set at HeadingFontSize or above.
func Segment(page domain.Page) []domain.Block {
	s := &segmenter{
		page:         page.Number,
		height:       page.Height,
		kind:         domain.BlockParagraph,
		lastFontSize: domain.DefaultFontSize,
	}
	for _, run := range page.Runs {
		s.consume(run)
	}
	s.flushParagraph()
	s.flushList()
	return s.blocks
}

// segmenter is the accumulator for a single Segment call.
type segmenter struct {
	page   int
	height float64

	paragraph []string
	list      []string
	kind      domain.BlockKind

	hasY         bool
	lastY        float64
	lastFontSize float64

	blocks []domain.Block
}

func (s *segmenter) consume(run domain.TextRun) {
	text := strings.TrimSpace(run.Text)
	if text == "" {
		return
	}

	if bulletPrefix.MatchString(text) {
		s.flushParagraph()
		if item := strings.TrimSpace(bulletStrip.ReplaceAllString(text, "")); item != "" {
			s.list = append(s.list, item)
		}
		s.recordY(run.Y)
		return
	}

	if s.hasY && math.Abs(run.Y-s.lastY) > BreakGap {
		if len(s.list) > 0 {
			s.flushList()
		}
		s.flushParagraph()
	}

	s.paragraph = append(s.paragraph, text)
	if run.FontSize >= HeadingFontSize {
		s.kind = domain.BlockHeading
	}
	s.lastFontSize = run.FontSize
	s.recordY(run.Y)
}

func (s *segmenter) recordY(y float64) {
	s.lastY = y
	s.hasY = true
}

func (s *segmenter) flushParagraph() {
	// Fields splits on Unicode white space, so NBSP and em spaces collapse too.
	text := strings.Join(strings.Fields(strings.Join(s.paragraph, " ")), " ")
	kind := s.kind
	s.paragraph = s.paragraph[:0]
	s.kind = domain.BlockParagraph
	if text == "" {
		return
	}

	pos := s.position()
	if kind == domain.BlockHeading {
		s.blocks = append(s.blocks, domain.HeadingBlock{
			Text:     text,
			Level:    HeadingLevel(s.lastFontSize),
			Page:     s.page,
			Position: pos,
		})
		return
	}
	s.blocks = append(s.blocks, domain.ParagraphBlock{
		Text:     text,
		Page:     s.page,
		Position: pos,
	})
}

func (s *segmenter) flushList() {
	if len(s.list) == 0 {
		return
	}
	items := make([]string, len(s.list))
	copy(items, s.list)
	s.list = s.list[:0]
	s.blocks = append(s.blocks, domain.ListBlock{Items: items, Page: s.page})
}

// position returns 1 - lastY/height rounded to 4 decimals and clamped to
// [0, 1], or nil when the page height or a Y coordinate is unknown.
func (s *segmenter) position() *float64 {
	if !s.hasY || s.height <= 0 {
		return nil
	}
	p := math.Round((1-s.lastY/s.height)*10000) / 10000
	p = math.Max(0, math.Min(1, p))
	return &p
}
