package vectorstore

import "errors"

var (
	// ErrUnavailable indicates the index backend could not be reached.
	ErrUnavailable = errors.New("vector index unavailable")

	// ErrMissingVector indicates an entry was submitted without an embedding.
	ErrMissingVector = errors.New("entry vector required")

	// ErrInvalidLimit indicates a non-positive search limit.
	ErrInvalidLimit = errors.New("search limit must be positive")
)
