package domain

// RawDocument is an uploaded document before parsing.
type RawDocument struct {
	// Name is the file name hint, e.g. "report.pdf". May be empty.
	Name string

	// MIMEType is the declared media type hint. May be empty.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// ParseOptions controls parsing of a single document.
type ParseOptions struct {
	// MaxPreviewPages caps how many leading pages get a preview.
	// Zero or negative means no cap.
	MaxPreviewPages int

	// SkipPreviews disables page previews entirely.
	SkipPreviews bool
}

// PreviewCap returns how many of pages should get a preview attempt.
func (o ParseOptions) PreviewCap(pages int) int {
	switch {
	case o.SkipPreviews:
		return 0
	case o.MaxPreviewPages > 0 && o.MaxPreviewPages < pages:
		return o.MaxPreviewPages
	default:
		return pages
	}
}

// ChangeType represents the type of change seen in a watched directory.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange is a change event from the inbox watcher.
type RawDocumentChange struct {
	Type ChangeType

	// Path is the absolute path of the changed file.
	Path string

	// Document holds the file contents. Content is nil for deletions.
	Document RawDocument
}
