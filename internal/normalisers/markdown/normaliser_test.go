package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

const sample = "# Project Title\n" +
	"\n" +
	"Intro with a [link](https://example.com) and **bold** text\n" +
	"spanning two lines.\n" +
	"\n" +
	"## Setup\n" +
	"\n" +
	"- first step\n" +
	"- second `step`\n" +
	"  continued\n" +
	"1. numbered\n" +
	"\n" +
	"> quoted words\n" +
	"> more quote\n" +
	"\n" +
	"| Name | Value |\n" +
	"| ---- | :---: |\n" +
	"| a    | 1     |\n" +
	"\n" +
	"![diagram](img/arch.png \"Architecture\")\n" +
	"\n" +
	"---\n" +
	"\n" +
	"##### Deep heading\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(\"hi\")\n" +
	"```\n"

func TestParse_Sample(t *testing.T) {
	blocks, title := Parse(sample)
	assert.Equal(t, "Project Title", title)

	require.Len(t, blocks, 9)

	assert.Equal(t, domain.HeadingBlock{Text: "Project Title", Level: 1, Page: 1}, blocks[0])
	assert.Equal(t, domain.ParagraphBlock{Text: "Intro with a link and bold text spanning two lines.", Page: 1}, blocks[1])
	assert.Equal(t, domain.HeadingBlock{Text: "Setup", Level: 2, Page: 1}, blocks[2])
	assert.Equal(t, domain.ListBlock{Items: []string{"first step", "second step continued", "numbered"}, Page: 1}, blocks[3])
	assert.Equal(t, domain.QuoteBlock{Text: "quoted words more quote", Page: 1}, blocks[4])
	assert.Equal(t, domain.TableBlock{Rows: [][]string{{"Name", "Value"}, {"a", "1"}}, Page: 1}, blocks[5])
	assert.Equal(t, domain.ImageBlock{Image: domain.ImagePayload{Ref: "img/arch.png", Alt: "diagram", Caption: "Architecture"}, Page: 1}, blocks[6])
	assert.Equal(t, domain.HeadingBlock{Text: "Deep heading", Level: 4, Page: 1}, blocks[7])
	assert.Equal(t, domain.ParagraphBlock{Text: "fmt.Println(\"hi\")", Page: 1}, blocks[8])
}

func TestParse_Empty(t *testing.T) {
	blocks, title := Parse("\n\n   \n")
	assert.Empty(t, blocks)
	assert.Empty(t, title)
}

func TestParse_UnterminatedFence(t *testing.T) {
	blocks, _ := Parse("```\ncode line\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "code line", blocks[0].(domain.ParagraphBlock).Text)
}

func TestNormalise(t *testing.T) {
	raw := &domain.RawDocument{Name: "README.md", Content: []byte("# Hello\n\nWorld *wide*.\n\n* a\n* b\n")}

	doc, err := New().Normalise(context.Background(), raw, domain.ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.BlockMetadata, doc.Blocks[0].Kind())
	assert.Equal(t, 1, doc.Metadata.Pages)
	assert.Equal(t, domain.FormatMarkdown, doc.Metadata.Format)
	assert.Equal(t, "Hello", doc.Metadata.Title)
	assert.Equal(t, "# Hello\n\nWorld wide.\n\n• a\n• b", doc.Text)
}

func TestNormalise_NilRaw(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil, domain.ParseOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedExtensions(t *testing.T) {
	assert.Contains(t, New().SupportedExtensions(), ".md")
	assert.Equal(t, 50, New().Priority())
}
