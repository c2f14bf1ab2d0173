// Package domain defines the core entities for docblocks.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Block: a typed unit of content (heading, paragraph, list, ...)
//   - Document: ordered blocks, their plain-text projection and metadata
//   - TextRun and Page: positioned text extracted from a page
//   - RawDocument: uploaded bytes plus name and media-type hints
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
