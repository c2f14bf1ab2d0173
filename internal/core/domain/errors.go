package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown block type or format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrParseFailed indicates text could not be extracted from a document.
	// No partial document is produced.
	ErrParseFailed = errors.New("parse failed")

	// ErrSchemaAbsent indicates the block storage table does not exist.
	// Callers treat it as "persistence not configured" and skip the save.
	ErrSchemaAbsent = errors.New("block storage schema absent")

	// ErrPreviewUnavailable indicates a page preview could not be rendered.
	ErrPreviewUnavailable = errors.New("page preview unavailable")

	// ErrServiceUnavailable indicates a required service is not configured.
	ErrServiceUnavailable = errors.New("service unavailable")
)
