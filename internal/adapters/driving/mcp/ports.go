package mcp

import (
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Document parses documents and reads stored blocks.
	Document driving.DocumentService

	// Options returns the parse options applied to parse_document when the
	// caller does not override them. Optional.
	Options func() ParseDefaults
}

// ParseDefaults are the configured defaults for parse_document.
type ParseDefaults struct {
	PreviewPages int
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
