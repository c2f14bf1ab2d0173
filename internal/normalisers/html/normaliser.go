package html

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/normalisers/markdown"
	"github.com/custodia-labs/docblocks/internal/projector"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
	now    func() time.Time
}

// New creates a new HTML normaliser.
func New() *Normaliser {
	policy := bluemonday.UGCPolicy()
	policy.SkipElementsContent("title")

	return &Normaliser{
		policy: policy,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		now: time.Now,
	}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise sanitises the HTML, converts it to Markdown and builds blocks
// from the result.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument, _ domain.ParseOptions) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	src := string(raw.Content)
	title := extractTitle(src)

	md, err := n.conv.ConvertString(n.policy.Sanitize(src))
	if err != nil {
		return nil, fmt.Errorf("converting html: %w: %w", domain.ErrParseFailed, err)
	}

	blocks, h1 := markdown.Parse(md)
	if title == "" {
		title = h1
	}

	doc := domain.NewDocument(domain.Metadata{
		Pages:       1,
		SourceName:  raw.Name,
		ExtractedAt: n.now(),
		Format:      domain.FormatHTML,
		Title:       title,
	}, blocks)
	doc.Text = projector.PlainText(doc.Blocks)
	return doc, nil
}

// extractTitle returns the text of the first <title> element, or "".
func extractTitle(src string) string {
	z := xhtml.NewTokenizer(strings.NewReader(src))
	inTitle := false
	var b strings.Builder
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return strings.TrimSpace(b.String())
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Title {
				inTitle = true
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Title && inTitle {
				return strings.TrimSpace(b.String())
			}
		case xhtml.TextToken:
			if inTitle {
				b.Write(z.Text())
			}
		}
	}
}
