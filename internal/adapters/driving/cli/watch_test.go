package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/core/services"
)

func TestWatchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, _, err := execute("watch")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestWatchCmd_MissingDirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := execute("watch", filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, err)
}

func TestWatchCmd_ScanIngestsExistingFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(notes, []byte(sampleMarkdown), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.md"), []byte("# secret"), 0600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, _, err := executeContext(ctx, "watch", dir, "--scan", "--rate", "100")
	require.NoError(t, err)

	assert.Contains(t, out, "Watching ")
	assert.Contains(t, out, "+ "+notes)
	assert.Contains(t, out, "(5 blocks)")
	assert.NotContains(t, out, ".hidden.md")

	docs, err := documentService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, services.DocumentIDForPath(notes), docs[0].ID)
}
