package domain

import "math"

// DefaultFontSize is assumed for runs that report no usable font size.
const DefaultFontSize = 12.0

// TextRun is a contiguous piece of text extracted from a page with a single
// vertical coordinate and font size.
type TextRun struct {
	Text string

	// Y is the baseline coordinate in page units, measured from the bottom.
	Y float64

	FontSize float64
}

// NewTextRun builds a run, replacing unusable numbers with defaults:
// a missing, non-positive or NaN font size becomes DefaultFontSize and
// a non-finite Y becomes 0.
func NewTextRun(text string, y, fontSize float64) TextRun {
	if math.IsNaN(fontSize) || math.IsInf(fontSize, 0) || fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
	}
	return TextRun{Text: text, Y: y, FontSize: fontSize}
}

// Page is the text content of a single page, in extraction order.
type Page struct {
	// Number is 1-based.
	Number int

	// Height and Width are in page units. Height is 0 when unknown.
	Height float64
	Width  float64

	Runs []TextRun
}

// CharCount returns the number of runes across all runs.
func (p Page) CharCount() int {
	n := 0
	for _, r := range p.Runs {
		for range r.Text {
			n++
		}
	}
	return n
}
