package caption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "A table of results", "A table of results"},
		{"quotes and dot", "\"A scanned invoice.\"", "A scanned invoice"},
		{"first line only", "A map of Europe\nwith borders", "A map of Europe"},
		{"backticks", "`Two photos`", "Two photos"},
		{"whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestClean_Truncates(t *testing.T) {
	got := Clean(strings.Repeat("é", MaxRunes+50))
	assert.Equal(t, MaxRunes, len([]rune(got)))
}
