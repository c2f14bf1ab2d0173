// Package plaintext provides the fallback Normaliser. Any input that no
// format-specific normaliser claims is decoded as text and returned as a
// single paragraph.
package plaintext

import (
	"bytes"
	"context"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text and unrecognised documents.
type Normaliser struct {
	now func() time.Time
}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/yaml",
		"text/toml",
		"application/json",
		"application/xml",
	}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".text", ".log", ".csv", ".json", ".yaml", ".yml", ".toml", ".xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes raw as text and returns a one-paragraph document whose
// plain text is exactly the decoded text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument, _ domain.ParseOptions) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := Decode(raw.Content)

	doc := domain.NewDocument(domain.Metadata{
		Pages:        1,
		PreviewPages: 0,
		SourceName:   raw.Name,
		ExtractedAt:  n.now(),
		Format:       domain.FormatText,
	}, []domain.Block{
		domain.ParagraphBlock{Text: text, Page: 1},
	})
	doc.Text = text
	return doc, nil
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode converts b to a string, trying UTF-8 (with or without BOM),
// UTF-16 with BOM, Windows-1251 and finally Latin-1, which accepts any input.
func Decode(b []byte) string {
	switch {
	case bytes.HasPrefix(b, utf8BOM) && utf8.Valid(b[len(utf8BOM):]):
		return string(b[len(utf8BOM):])
	case utf8.Valid(b):
		return string(b)
	case bytes.HasPrefix(b, utf16LEBOM) || bytes.HasPrefix(b, utf16BEBOM):
		if s, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), b); err == nil {
			return s
		}
	}

	// 0x98 is the only byte Windows-1251 leaves undefined.
	if bytes.IndexByte(b, 0x98) < 0 {
		if s, err := decodeWith(charmap.Windows1251, b); err == nil {
			return s
		}
	}
	s, _ := decodeWith(charmap.ISO8859_1, b)
	return s
}

func decodeWith(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
