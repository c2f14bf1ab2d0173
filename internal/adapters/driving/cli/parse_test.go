package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleMarkdown = "# Release Notes\n\nEverything changed.\n\n- faster\n- smaller\n\n> quoted"

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseCmd_Use(t *testing.T) {
	assert.Equal(t, "parse [file]", parseCmd.Use)
}

func TestParseCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, err := execute("parse")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestParseCmd_ErrorsWithoutServices(t *testing.T) {
	oldDocument := documentService
	documentService = nil
	defer func() { documentService = oldDocument }()

	_, _, err := execute("parse", "x.md")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestParseCmd_TextOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown))

	require.NoError(t, err)
	assert.Contains(t, out, "# Release Notes")
	assert.Contains(t, out, "Everything changed.")
	assert.Contains(t, out, "• faster\n• smaller")
	assert.Contains(t, out, "> quoted")
}

func TestParseCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown), "--output", "json")
	require.NoError(t, err)

	var doc struct {
		Blocks   []map[string]any `json:"blocks"`
		Metadata map[string]any   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Blocks, 5)
	assert.Equal(t, "metadata", doc.Blocks[0]["type"])
	assert.Equal(t, "heading", doc.Blocks[1]["type"])
	assert.Equal(t, "quote", doc.Blocks[4]["type"])
	assert.Equal(t, "notes.md", doc.Metadata["source_name"])
}

func TestParseCmd_YAMLOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown), "-o", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	blocks, ok := doc["blocks"].([]any)
	require.True(t, ok)
	assert.Len(t, blocks, 5)
	assert.Contains(t, out, "type: heading")
}

func TestParseCmd_InvalidOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown), "-o", "xml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestParseCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("parse", filepath.Join(t.TempDir(), "missing.md"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestParseCmd_UnknownTypeIsPlainText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("parse", writeSample(t, "data.bin", "just some words"), "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Blocks []map[string]any `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "paragraph", doc.Blocks[1]["type"])
	assert.Equal(t, "just some words", doc.Blocks[1]["text"])
}

func TestParseCmd_SaveWithID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, errOut, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown), "--save", "--id", "notes")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Saved 5 blocks as notes")

	blocks, err := documentService.Blocks(context.Background(), "notes")
	require.NoError(t, err)
	assert.Len(t, blocks, 5)
}

func TestParseCmd_SaveGeneratesID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, errOut, err := execute("parse", writeSample(t, "notes.md", sampleMarkdown), "--save")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Saved 5 blocks as ")

	docs, err := documentService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0].ID, 36)
}

func TestParseCmd_Stdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := executeWithInput(sampleMarkdown, "parse", "-", "--mime", "text/markdown")

	require.NoError(t, err)
	assert.Contains(t, out, "# Release Notes")
}
