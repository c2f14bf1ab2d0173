package domain

// BlockKind identifies the variant of a Block.
type BlockKind string

// Block kinds, as they appear in the "type" field of serialised blocks.
const (
	BlockMetadata    BlockKind = "metadata"
	BlockHeading     BlockKind = "heading"
	BlockParagraph   BlockKind = "paragraph"
	BlockList        BlockKind = "list"
	BlockQuote       BlockKind = "quote"
	BlockTable       BlockKind = "table"
	BlockImage       BlockKind = "image"
	BlockPagePreview BlockKind = "page_preview"
)

// IsValid returns true if the kind is one of the known block variants.
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockMetadata, BlockHeading, BlockParagraph, BlockList,
		BlockQuote, BlockTable, BlockImage, BlockPagePreview:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k BlockKind) String() string {
	return string(k)
}

// Block is one typed unit of document content.
//
// The set of variants is closed: only types in this package implement Block.
// Consumers that need per-variant behaviour implement BlockVisitor, so adding
// a variant fails to compile until every visitor handles it.
type Block interface {
	// Kind returns the variant tag.
	Kind() BlockKind

	// PageNumber returns the 1-based page the block came from,
	// or 0 for blocks without a page (metadata).
	PageNumber() int

	// Accept dispatches to the visitor method for this variant.
	Accept(v BlockVisitor)

	sealed()
}

// BlockVisitor has one method per Block variant.
type BlockVisitor interface {
	VisitMetadata(b MetadataBlock)
	VisitHeading(b HeadingBlock)
	VisitParagraph(b ParagraphBlock)
	VisitList(b ListBlock)
	VisitQuote(b QuoteBlock)
	VisitTable(b TableBlock)
	VisitImage(b ImageBlock)
	VisitPagePreview(b PagePreviewBlock)
}

// ImagePayload is an encoded image or a reference to one.
type ImagePayload struct {
	// Data is the encoded image (PNG for generated previews).
	Data []byte `json:"data,omitempty"`

	// Ref is an external reference used instead of Data, if set.
	Ref string `json:"ref,omitempty"`

	// MIMEType of Data, e.g. "image/png".
	MIMEType string `json:"mime_type,omitempty"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Caption is descriptive text for the image, if any.
	Caption string `json:"caption,omitempty"`

	// Alt is alternative text, used when there is no caption.
	Alt string `json:"alt,omitempty"`
}

// MetadataBlock wraps document metadata. It is always the first block
// of a Document and never carries a page number.
type MetadataBlock struct {
	Metadata Metadata
}

// HeadingBlock is a run of large-font text.
type HeadingBlock struct {
	Text string
	// Level is 1 (largest) to 4.
	Level int
	Page  int
	// Position is the vertical position as a fraction of page height
	// measured from the top, rounded to 4 decimals. Nil when unknown.
	Position *float64
}

// ParagraphBlock is body text.
type ParagraphBlock struct {
	Text     string
	Page     int
	Position *float64
}

// ListBlock holds bullet items with their bullet glyphs removed.
type ListBlock struct {
	Items []string
	Page  int
}

// QuoteBlock is quoted text.
type QuoteBlock struct {
	Text string
	Page int
}

// TableBlock holds rows of cell text.
type TableBlock struct {
	Rows [][]string
	Page int
}

// ImageBlock is an image embedded in the document.
type ImageBlock struct {
	Image ImagePayload
	Page  int
}

// PagePreviewBlock is a rendered image of a whole page.
type PagePreviewBlock struct {
	Image ImagePayload
	Page  int
}

func (MetadataBlock) Kind() BlockKind    { return BlockMetadata }
func (HeadingBlock) Kind() BlockKind     { return BlockHeading }
func (ParagraphBlock) Kind() BlockKind   { return BlockParagraph }
func (ListBlock) Kind() BlockKind        { return BlockList }
func (QuoteBlock) Kind() BlockKind       { return BlockQuote }
func (TableBlock) Kind() BlockKind       { return BlockTable }
func (ImageBlock) Kind() BlockKind       { return BlockImage }
func (PagePreviewBlock) Kind() BlockKind { return BlockPagePreview }

func (MetadataBlock) PageNumber() int      { return 0 }
func (b HeadingBlock) PageNumber() int     { return b.Page }
func (b ParagraphBlock) PageNumber() int   { return b.Page }
func (b ListBlock) PageNumber() int        { return b.Page }
func (b QuoteBlock) PageNumber() int       { return b.Page }
func (b TableBlock) PageNumber() int       { return b.Page }
func (b ImageBlock) PageNumber() int       { return b.Page }
func (b PagePreviewBlock) PageNumber() int { return b.Page }

func (b MetadataBlock) Accept(v BlockVisitor)    { v.VisitMetadata(b) }
func (b HeadingBlock) Accept(v BlockVisitor)     { v.VisitHeading(b) }
func (b ParagraphBlock) Accept(v BlockVisitor)   { v.VisitParagraph(b) }
func (b ListBlock) Accept(v BlockVisitor)        { v.VisitList(b) }
func (b QuoteBlock) Accept(v BlockVisitor)       { v.VisitQuote(b) }
func (b TableBlock) Accept(v BlockVisitor)       { v.VisitTable(b) }
func (b ImageBlock) Accept(v BlockVisitor)       { v.VisitImage(b) }
func (b PagePreviewBlock) Accept(v BlockVisitor) { v.VisitPagePreview(b) }

func (MetadataBlock) sealed()    {}
func (HeadingBlock) sealed()     {}
func (ParagraphBlock) sealed()   {}
func (ListBlock) sealed()        {}
func (QuoteBlock) sealed()       {}
func (TableBlock) sealed()       {}
func (ImageBlock) sealed()       {}
func (PagePreviewBlock) sealed() {}

// HasPage reports whether the block is attached to a page.
func HasPage(b Block) bool {
	return b.PageNumber() > 0
}
