// Package pdf implements the TextRunSource port on top of
// github.com/ledongthuc/pdf.
//
// The reader reports one text element per glyph. This package merges
// glyphs that share a baseline and font size into runs, normalises them
// to NFC and reads page height from the (possibly inherited) MediaBox.
// Panics raised by the reader on malformed input are returned as errors.
package pdf
