package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

// seedDocument stores the sample markdown under id.
func seedDocument(t *testing.T, id string) {
	t.Helper()
	raw := &domain.RawDocument{Name: "notes.md", Content: []byte(sampleMarkdown)}
	result, err := documentService.Ingest(context.Background(), id, raw, domain.ParseOptions{})
	require.NoError(t, err)
	require.True(t, result.Persisted)
}

func TestBlocksCmd_HasSubcommands(t *testing.T) {
	commands := blocksCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "text")
	assert.Contains(t, commandNames, "delete")
}

func TestBlocksShowCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, err := execute("blocks", "show")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBlocksListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("blocks", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents stored.")
}

func TestBlocksListCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedDocument(t, "doc-a")
	seedDocument(t, "doc-b")

	out, _, err := execute("blocks", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "doc-a")
	assert.Contains(t, out, "doc-b")
	assert.Contains(t, out, "Total: 2 documents")
}

func TestBlocksListCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedDocument(t, "doc-a")

	out, _, err := execute("blocks", "list", "-o", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"doc-a","blocks":5,"pages":1}]`, out)
}

func TestBlocksShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedDocument(t, "doc-a")

	out, _, err := execute("blocks", "show", "doc-a")
	require.NoError(t, err)
	assert.Contains(t, out, "# Release Notes")

	out, _, err = execute("blocks", "show", "doc-a", "--output", "json")
	require.NoError(t, err)
	var blocks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &blocks))
	assert.Len(t, blocks, 5)
}

func TestBlocksShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("blocks", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlocksTextCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedDocument(t, "doc-a")

	out, _, err := execute("blocks", "text", "doc-a")

	require.NoError(t, err)
	assert.Contains(t, out, "# Release Notes\n\nEverything changed.")
}

func TestBlocksDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedDocument(t, "doc-a")

	out, _, err := execute("blocks", "delete", "doc-a")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted doc-a")

	_, err = documentService.Blocks(context.Background(), "doc-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlocksCmd_ErrorsWithoutServices(t *testing.T) {
	oldDocument := documentService
	documentService = nil
	defer func() { documentService = oldDocument }()

	for _, args := range [][]string{
		{"blocks", "list"},
		{"blocks", "show", "x"},
		{"blocks", "text", "x"},
		{"blocks", "delete", "x"},
	} {
		_, _, err := execute(args...)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	}
}
