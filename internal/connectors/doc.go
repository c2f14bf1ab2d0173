// Package connectors holds sources of raw documents outside the core.
//
// The inbox connector watches a local directory and reports created,
// updated and removed files as domain.RawDocumentChange values.
package connectors
