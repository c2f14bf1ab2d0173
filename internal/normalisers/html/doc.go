// Package html provides a Normaliser implementation for HTML documents.
// Markup is sanitised with bluemonday, converted to Markdown and then
// split into blocks by the Markdown parser, so headings, lists, quotes
// and tables survive as typed blocks.
package html
