// Package caption holds what every preview captioner shares: the prompt
// sent with each image and the clean-up applied to model replies.
//
// Providers live in subpackages (gemini, ollama).
package caption

import "strings"

// Prompt asks a vision model for alt text.
const Prompt = "Describe this page image for alt text in at most 12 words. Be factual."

// MaxRunes bounds the caption length kept from a reply.
const MaxRunes = 200

// Clean keeps the first line of a reply, without quotes or trailing
// punctuation, truncated to MaxRunes.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "\"'` ")
	s = strings.TrimRight(s, ".")
	if r := []rune(s); len(r) > MaxRunes {
		s = string(r[:MaxRunes])
	}
	return strings.TrimSpace(s)
}
