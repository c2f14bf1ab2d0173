// Package file provides the TOML-backed configuration store.
//
// Keys use dot notation ("parse.concurrency"). On disk the first segment
// becomes a table, so the file reads naturally:
//
//	[parse]
//	concurrency = 8
package file
