package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextRun_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		fontSize float64
		wantY    float64
		wantSize float64
	}{
		{"valid", 700, 14, 700, 14},
		{"zero font size", 700, 0, 700, DefaultFontSize},
		{"negative font size", 700, -3, 700, DefaultFontSize},
		{"NaN font size", 700, math.NaN(), 700, DefaultFontSize},
		{"NaN y", math.NaN(), 20, 0, 20},
		{"infinite y", math.Inf(1), 20, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTextRun("x", tt.y, tt.fontSize)
			assert.Equal(t, tt.wantY, r.Y)
			assert.Equal(t, tt.wantSize, r.FontSize)
			assert.Equal(t, "x", r.Text)
		})
	}
}

func TestPage_CharCount(t *testing.T) {
	p := Page{Runs: []TextRun{{Text: "héllo"}, {Text: " "}, {Text: "мир"}}}
	assert.Equal(t, 9, p.CharCount())
}

func TestParseOptions_PreviewCap(t *testing.T) {
	assert.Equal(t, 5, ParseOptions{}.PreviewCap(5))
	assert.Equal(t, 2, ParseOptions{MaxPreviewPages: 2}.PreviewCap(5))
	assert.Equal(t, 5, ParseOptions{MaxPreviewPages: 9}.PreviewCap(5))
	assert.Equal(t, 0, ParseOptions{SkipPreviews: true, MaxPreviewPages: 2}.PreviewCap(5))
}

func TestQuality_Evaluate(t *testing.T) {
	q := Quality{CharsPerPage: 900, PrintableRatio: 0.99}
	q.Evaluate()
	assert.False(t, q.NeedsOCR)

	q = Quality{CharsPerPage: 10, PrintableRatio: 1}
	q.Evaluate()
	assert.True(t, q.NeedsOCR)

	q = Quality{CharsPerPage: 900, PrintableRatio: 0.5}
	q.Evaluate()
	assert.True(t, q.NeedsOCR)
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "created", ChangeCreated.String())
	assert.Equal(t, "deleted", ChangeDeleted.String())
	assert.Equal(t, "unknown", ChangeType(42).String())
}
