package engine

import "errors"

// Errors behind failed engine operations. The public API reports failure as
// a false return; these are what gets logged.
var (
	// ErrTextTooLong indicates an edit would exceed the maximum text length.
	ErrTextTooLong = errors.New("text would exceed maximum length")

	// ErrOffsetOutOfRange indicates an offset is outside the text.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrNoChange indicates an edit had nothing to do.
	ErrNoChange = errors.New("nothing to change")

	// ErrNoSelection indicates an operation needs a non-empty selection.
	ErrNoSelection = errors.New("no selection")

	// ErrViewClosed indicates a closed view was used.
	ErrViewClosed = errors.New("view is closed")
)
