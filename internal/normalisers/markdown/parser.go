package markdown

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// MaxHeadingLevel is the deepest heading level blocks carry; deeper
// Markdown headings are clamped to it.
const MaxHeadingLevel = 4

// Pre-compiled line patterns.
var (
	headingLine = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+(.*?)(?:\s+#+)?\s*$`)
	ruleLine    = regexp.MustCompile(`^\s{0,3}(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	fenceLine   = regexp.MustCompile("^\\s{0,3}(?:```|~~~)")
	listLine    = regexp.MustCompile(`^\s*(?:[-*+]|\d{1,9}[.)])\s+(.*)$`)
	quoteLine   = regexp.MustCompile(`^\s{0,3}>\s?(.*)$`)
	tableRule   = regexp.MustCompile(`^\s*\|?(?:\s*:?-+:?\s*\|)+\s*:?-*:?\s*$`)
	imageLine   = regexp.MustCompile(`^\s*!\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"([^"]*)")?\s*\)\s*$`)
)

// Pre-compiled inline patterns.
var (
	inlineImage  = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	inlineLink   = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	strongMarker = regexp.MustCompile(`\*\*|__|~~`)
	emStar       = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
	emUnderscore = regexp.MustCompile(`(^|\W)_([^_\s][^_]*)_(\W|$)`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Parse converts Markdown source into page-1 blocks and returns the text of
// the first level-1 heading as the title.
func Parse(src string) ([]domain.Block, string) {
	p := &parser{}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	for _, line := range strings.Split(src, "\n") {
		p.line(line)
	}
	if p.inCode {
		p.flushCode()
	}
	p.flushAll()
	return p.blocks, p.title
}

type parser struct {
	blocks []domain.Block
	title  string

	para  []string
	list  []string
	quote []string
	table [][]string

	inCode bool
	code   []string
}

func (p *parser) line(line string) {
	if p.inCode {
		if fenceLine.MatchString(line) {
			p.inCode = false
			p.flushCode()
			return
		}
		p.code = append(p.code, line)
		return
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		p.flushAll()

	case fenceLine.MatchString(line):
		p.flushAll()
		p.inCode = true

	case headingLine.MatchString(line):
		p.flushAll()
		m := headingLine.FindStringSubmatch(line)
		text := inline(m[2])
		if text == "" {
			return
		}
		level := min(len(m[1]), MaxHeadingLevel)
		if len(m[1]) == 1 && p.title == "" {
			p.title = text
		}
		p.blocks = append(p.blocks, domain.HeadingBlock{Text: text, Level: level, Page: 1})

	case ruleLine.MatchString(line):
		p.flushAll()

	case strings.HasPrefix(trimmed, "|"):
		p.flushParagraph()
		p.flushList()
		p.flushQuote()
		if tableRule.MatchString(trimmed) {
			return
		}
		p.table = append(p.table, splitRow(trimmed))

	case imageLine.MatchString(line):
		p.flushAll()
		m := imageLine.FindStringSubmatch(line)
		p.blocks = append(p.blocks, domain.ImageBlock{
			Image: domain.ImagePayload{Ref: m[2], Alt: m[1], Caption: m[3]},
			Page:  1,
		})

	case listLine.MatchString(line):
		p.flushParagraph()
		p.flushQuote()
		p.flushTable()
		if item := inline(listLine.FindStringSubmatch(line)[1]); item != "" {
			p.list = append(p.list, item)
		}

	case quoteLine.MatchString(line):
		p.flushParagraph()
		p.flushList()
		p.flushTable()
		p.quote = append(p.quote, quoteLine.FindStringSubmatch(line)[1])

	case len(p.list) > 0 && line != trimmed:
		// Indented continuation of the last list item.
		last := len(p.list) - 1
		p.list[last] = p.list[last] + " " + inline(trimmed)

	case len(p.quote) > 0:
		p.quote = append(p.quote, trimmed)

	default:
		p.flushList()
		p.flushTable()
		p.para = append(p.para, trimmed)
	}
}

func (p *parser) flushAll() {
	p.flushParagraph()
	p.flushList()
	p.flushQuote()
	p.flushTable()
}

func (p *parser) flushParagraph() {
	text := inline(strings.Join(p.para, " "))
	p.para = nil
	if text != "" {
		p.blocks = append(p.blocks, domain.ParagraphBlock{Text: text, Page: 1})
	}
}

func (p *parser) flushList() {
	if len(p.list) == 0 {
		return
	}
	p.blocks = append(p.blocks, domain.ListBlock{Items: p.list, Page: 1})
	p.list = nil
}

func (p *parser) flushQuote() {
	text := inline(strings.Join(p.quote, " "))
	p.quote = nil
	if text != "" {
		p.blocks = append(p.blocks, domain.QuoteBlock{Text: text, Page: 1})
	}
}

func (p *parser) flushTable() {
	if len(p.table) == 0 {
		return
	}
	p.blocks = append(p.blocks, domain.TableBlock{Rows: p.table, Page: 1})
	p.table = nil
}

func (p *parser) flushCode() {
	text := strings.Trim(strings.Join(p.code, "\n"), "\n")
	p.code = nil
	if strings.TrimSpace(text) != "" {
		p.blocks = append(p.blocks, domain.ParagraphBlock{Text: text, Page: 1})
	}
}

// splitRow splits "| a | b |" into trimmed, inline-stripped cells.
func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, c := range parts {
		cells[i] = inline(c)
	}
	return cells
}

// inline removes inline Markdown syntax and collapses whitespace.
func inline(s string) string {
	s = inlineImage.ReplaceAllString(s, "$1")
	s = inlineLink.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = strongMarker.ReplaceAllString(s, "")
	s = emStar.ReplaceAllString(s, "$1")
	s = emUnderscore.ReplaceAllString(s, "$1$2$3")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
