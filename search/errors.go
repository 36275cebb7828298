package search

import "errors"

var (
	// ErrRetrieval indicates the similarity search could not be completed.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")
)
