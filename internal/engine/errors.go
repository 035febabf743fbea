package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNilRenderer indicates New was called without a renderer.
	ErrNilRenderer = errors.New("renderer is nil")

	// ErrDocumentAlreadySet indicates SetDocument was called on an editor
	// that is already bound to a document.
	ErrDocumentAlreadySet = errors.New("document already set")
)
