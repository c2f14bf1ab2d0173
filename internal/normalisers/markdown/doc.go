// Package markdown provides a Normaliser for Markdown documents and the
// line-based parser the HTML normaliser reuses.
package markdown
