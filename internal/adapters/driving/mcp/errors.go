// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docblocks. It lets AI assistants parse documents into blocks and read
// stored block sets.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")
