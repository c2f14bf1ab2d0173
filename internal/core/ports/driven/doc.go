// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Turns a raw document of one format into blocks
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - TextRunSource: Opens a PDF and yields positioned text runs per page
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PagePreviewer: Renders page previews. Without it, documents have no preview blocks.
//   - Captioner: Captions previews. Without it, previews carry no caption.
//   - Inspector: Reports PDF extraction quality. Without it, Metadata.Quality is partial.
//   - BlockStore: Block persistence. Without it, parse results are not saved.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
