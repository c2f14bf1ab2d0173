package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_ErrorsWithoutServices(t *testing.T) {
	oldDocument := documentService
	documentService = nil
	defer func() { documentService = oldDocument }()

	_, _, err := execute("serve")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestServeCmd_StopsOnCancel(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, _, err := executeContext(ctx, "serve", "--addr", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "HTTP API listening on 127.0.0.1:0")
}
