package domain

import "errors"

var (
	// ErrStoreUnavailable means the backing store could not be reached or failed.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound means the referenced subject or tracked item does not exist
	// or is no longer accessible.
	ErrNotFound = errors.New("not found")

	// ErrConflict is reserved for multi-writer scenarios. The single-writer
	// toggle design never produces it.
	ErrConflict = errors.New("conflict")
)
