// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats, and the registry that picks one.
// Each normaliser turns the bytes of one format into an ordered block
// sequence with its plain-text projection.
//
// Normalisers are registered with the Registry at startup. The plain-text
// normaliser is the fallback for anything no other normaliser claims.
package normalisers
