package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// Theme defines the colour palette for styled block output.
type Theme struct {
	// Primary colours headings.
	Primary lipgloss.Color

	// Secondary colours list bullets and table headers.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for page markers, quotes and image placeholders.
	Muted lipgloss.Color

	// Border colours quote bars and table rules.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains the lipgloss styles used to render blocks.
type Styles struct {
	theme *Theme

	Heading   lipgloss.Style
	Paragraph lipgloss.Style
	Bullet    lipgloss.Style
	Quote     lipgloss.Style
	TableHead lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Paragraph: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Bullet: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		TableHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// Theme returns the theme the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// blockRenderer writes blocks for a terminal reader: styled headings,
// bulleted lists, boxed quotes and a page marker whenever the page changes.
type blockRenderer struct {
	styles *Styles
	parts  []string
	page   int
}

var _ domain.BlockVisitor = (*blockRenderer)(nil)

// renderBlocks formats blocks with styles.
func renderBlocks(blocks []domain.Block, styles *Styles) string {
	r := &blockRenderer{styles: styles}
	for _, b := range blocks {
		if p := b.PageNumber(); p > 0 && p != r.page {
			r.page = p
			r.add(styles.Muted.Render(fmt.Sprintf("── page %d ──", p)))
		}
		b.Accept(r)
	}
	return strings.Join(r.parts, "\n\n")
}

func (r *blockRenderer) add(s string) {
	r.parts = append(r.parts, s)
}

func (r *blockRenderer) VisitMetadata(b domain.MetadataBlock) {
	md := b.Metadata
	title := md.Title
	if title == "" {
		title = md.SourceName
	}
	line := fmt.Sprintf("%s · %s · %d page(s)", title, md.Format, md.Pages)
	if md.Quality != nil && md.Quality.NeedsOCR {
		line += " · needs OCR"
	}
	r.add(r.styles.Muted.Render(line))
}

func (r *blockRenderer) VisitHeading(b domain.HeadingBlock) {
	r.add(r.styles.Heading.Render(strings.Repeat("#", max(b.Level, 1)) + " " + b.Text))
}

func (r *blockRenderer) VisitParagraph(b domain.ParagraphBlock) {
	r.add(r.styles.Paragraph.Render(b.Text))
}

func (r *blockRenderer) VisitList(b domain.ListBlock) {
	lines := make([]string, len(b.Items))
	for i, item := range b.Items {
		lines[i] = r.styles.Bullet.Render("•") + " " + r.styles.Paragraph.Render(item)
	}
	r.add(strings.Join(lines, "\n"))
}

func (r *blockRenderer) VisitQuote(b domain.QuoteBlock) {
	r.add(r.styles.Quote.Render(b.Text))
}

func (r *blockRenderer) VisitTable(b domain.TableBlock) {
	lines := make([]string, len(b.Rows))
	for i, row := range b.Rows {
		line := strings.Join(row, " │ ")
		if i == 0 {
			line = r.styles.TableHead.Render(line)
		}
		lines[i] = line
	}
	r.add(strings.Join(lines, "\n"))
}

func (r *blockRenderer) VisitImage(b domain.ImageBlock) {
	r.add(r.styles.Muted.Render("[image] " + imageLabel(b.Image)))
}

func (r *blockRenderer) VisitPagePreview(b domain.PagePreviewBlock) {
	r.add(r.styles.Muted.Render(fmt.Sprintf("[preview %dx%d] %s", b.Image.Width, b.Image.Height, imageLabel(b.Image))))
}

func imageLabel(img domain.ImagePayload) string {
	if img.Caption != "" {
		return img.Caption
	}
	return img.Alt
}
