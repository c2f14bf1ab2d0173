package domain

import (
	"encoding/json"
	"fmt"
)

// blockWire is the serialised form of every Block variant.
// The Type field selects which of the remaining fields are meaningful.
type blockWire struct {
	Type     BlockKind     `json:"type"`
	Page     int           `json:"page,omitempty"`
	Text     string        `json:"text,omitempty"`
	Level    int           `json:"level,omitempty"`
	Position *float64      `json:"position,omitempty"`
	Items    []string      `json:"items,omitempty"`
	Rows     [][]string    `json:"rows,omitempty"`
	Image    *ImagePayload `json:"image,omitempty"`
	Metadata *Metadata     `json:"metadata,omitempty"`
}

// wireBuilder converts a Block into its wire form.
type wireBuilder struct {
	w blockWire
}

func (b *wireBuilder) VisitMetadata(m MetadataBlock) {
	md := m.Metadata
	b.w = blockWire{Type: BlockMetadata, Metadata: &md}
}

func (b *wireBuilder) VisitHeading(h HeadingBlock) {
	b.w = blockWire{Type: BlockHeading, Page: h.Page, Text: h.Text, Level: h.Level, Position: h.Position}
}

func (b *wireBuilder) VisitParagraph(p ParagraphBlock) {
	b.w = blockWire{Type: BlockParagraph, Page: p.Page, Text: p.Text, Position: p.Position}
}

func (b *wireBuilder) VisitList(l ListBlock) {
	b.w = blockWire{Type: BlockList, Page: l.Page, Items: l.Items}
}

func (b *wireBuilder) VisitQuote(q QuoteBlock) {
	b.w = blockWire{Type: BlockQuote, Page: q.Page, Text: q.Text}
}

func (b *wireBuilder) VisitTable(t TableBlock) {
	b.w = blockWire{Type: BlockTable, Page: t.Page, Rows: t.Rows}
}

func (b *wireBuilder) VisitImage(i ImageBlock) {
	img := i.Image
	b.w = blockWire{Type: BlockImage, Page: i.Page, Image: &img}
}

func (b *wireBuilder) VisitPagePreview(p PagePreviewBlock) {
	img := p.Image
	b.w = blockWire{Type: BlockPagePreview, Page: p.Page, Image: &img}
}

// EncodeBlock serialises a block as JSON with a "type" discriminator.
func EncodeBlock(b Block) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("encoding block: %w", ErrInvalidInput)
	}
	var wb wireBuilder
	b.Accept(&wb)
	return json.Marshal(wb.w)
}

// DecodeBlock parses a block produced by EncodeBlock.
func DecodeBlock(data []byte) (Block, error) {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding block: %w", err)
	}
	return w.block()
}

func (w blockWire) block() (Block, error) {
	switch w.Type {
	case BlockMetadata:
		var md Metadata
		if w.Metadata != nil {
			md = *w.Metadata
		}
		return MetadataBlock{Metadata: md}, nil
	case BlockHeading:
		return HeadingBlock{Text: w.Text, Level: w.Level, Page: w.Page, Position: w.Position}, nil
	case BlockParagraph:
		return ParagraphBlock{Text: w.Text, Page: w.Page, Position: w.Position}, nil
	case BlockList:
		return ListBlock{Items: w.Items, Page: w.Page}, nil
	case BlockQuote:
		return QuoteBlock{Text: w.Text, Page: w.Page}, nil
	case BlockTable:
		return TableBlock{Rows: w.Rows, Page: w.Page}, nil
	case BlockImage:
		return ImageBlock{Image: w.imagePayload(), Page: w.Page}, nil
	case BlockPagePreview:
		return PagePreviewBlock{Image: w.imagePayload(), Page: w.Page}, nil
	default:
		return nil, fmt.Errorf("decoding block of type %q: %w", w.Type, ErrUnsupportedType)
	}
}

func (w blockWire) imagePayload() ImagePayload {
	if w.Image == nil {
		return ImagePayload{}
	}
	return *w.Image
}

// Blocks is an ordered block sequence that serialises as a JSON array
// of tagged blocks.
type Blocks []Block

// MarshalJSON implements json.Marshaler.
func (bs Blocks) MarshalJSON() ([]byte, error) {
	wires := make([]blockWire, 0, len(bs))
	for _, b := range bs {
		var wb wireBuilder
		b.Accept(&wb)
		wires = append(wires, wb.w)
	}
	return json.Marshal(wires)
}

// UnmarshalJSON implements json.Unmarshaler.
func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var wires []blockWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return err
	}
	out := make(Blocks, 0, len(wires))
	for _, w := range wires {
		b, err := w.block()
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	*bs = out
	return nil
}
