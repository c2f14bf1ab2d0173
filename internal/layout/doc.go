// Package layout turns the positioned text runs of a page into typed blocks.
//
// Segmentation works from three signals only: vertical gaps between runs,
// font size, and a leading bullet glyph. It performs no I/O and keeps no
// state between calls, so pages may be segmented concurrently.
package layout
