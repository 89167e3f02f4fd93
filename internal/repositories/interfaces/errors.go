package interfaces

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")

	// ErrNoTransition is returned when a guarded update matched no document,
	// meaning the ride left the expected status before the update landed.
	ErrNoTransition = errors.New("ride is not in the expected status")
)
