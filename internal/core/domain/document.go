package domain

import "time"

// Format names the input format a Document was produced from.
type Format string

// Known formats.
const (
	FormatPDF      Format = "pdf"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Document is the structured result of parsing one input.
// Blocks[0] is always a MetadataBlock wrapping Metadata.
type Document struct {
	// Blocks in reading order: page order, then emission order within a page.
	Blocks Blocks `json:"blocks"`

	// Text is the plain-text projection of Blocks.
	Text string `json:"text"`

	Metadata Metadata `json:"metadata"`
}

// Metadata describes a parsed document.
type Metadata struct {
	// Pages is the number of pages in the source.
	Pages int `json:"pages"`

	// PreviewPages is the number of pages a preview was attempted for.
	PreviewPages int `json:"preview_pages"`

	// SourceName is the file name the document was uploaded as, if known.
	SourceName string `json:"source_name,omitempty"`

	// ExtractedAt is when parsing finished.
	ExtractedAt time.Time `json:"extracted_at"`

	Format Format `json:"format,omitempty"`

	// Title comes from the document itself, when it declares one.
	Title string `json:"title,omitempty"`

	// Quality is set for PDF sources.
	Quality *Quality `json:"quality,omitempty"`
}

// Quality summarises how well text could be extracted from a PDF.
type Quality struct {
	// CharsPerPage is the mean number of extracted characters per page.
	CharsPerPage float64 `json:"chars_per_page"`

	// PrintableRatio is the share of extracted runes that are printable.
	PrintableRatio float64 `json:"printable_ratio"`

	// HasImageStreams is true when any page references an image XObject.
	HasImageStreams bool `json:"has_image_streams"`

	// NeedsOCR is true when the text layer looks absent or garbled.
	NeedsOCR bool `json:"needs_ocr"`
}

// Thresholds used to flag a PDF as needing OCR.
const (
	MinCharsPerPage   = 50
	MinPrintableRatio = 0.85
)

// Evaluate sets NeedsOCR from the other fields.
func (q *Quality) Evaluate() {
	q.NeedsOCR = q.CharsPerPage < MinCharsPerPage || q.PrintableRatio < MinPrintableRatio
}

// NewDocument builds a Document whose first block wraps md, followed by
// content in order. Any metadata blocks in content are dropped.
func NewDocument(md Metadata, content []Block) *Document {
	blocks := make(Blocks, 0, len(content)+1)
	blocks = append(blocks, MetadataBlock{Metadata: md})
	for _, b := range content {
		if b == nil || b.Kind() == BlockMetadata {
			continue
		}
		blocks = append(blocks, b)
	}
	return &Document{Blocks: blocks, Metadata: md}
}

// SetMetadata replaces the document metadata and the leading metadata block.
func (d *Document) SetMetadata(md Metadata) {
	d.Metadata = md
	if len(d.Blocks) > 0 && d.Blocks[0].Kind() == BlockMetadata {
		d.Blocks[0] = MetadataBlock{Metadata: md}
		return
	}
	d.Blocks = append(Blocks{MetadataBlock{Metadata: md}}, d.Blocks...)
}

// BlockCount returns the number of blocks of the given kind.
func (d *Document) BlockCount(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

// DocumentSummary describes a persisted block set.
type DocumentSummary struct {
	ID     string `json:"id"`
	Blocks int    `json:"blocks"`
	Pages  int    `json:"pages"`
}
