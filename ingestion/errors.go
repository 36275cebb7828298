package ingestion

import "errors"

var (
	// ErrFetch indicates the document reference could not be retrieved.
	ErrFetch = errors.New("document fetch failed")

	// ErrExtraction indicates the extraction service could not produce text.
	ErrExtraction = errors.New("text extraction failed")

	// ErrIndexing indicates embedding or index writes failed. Chunks already
	// written before the failure stay in the index.
	ErrIndexing = errors.New("indexing failed")

	// ErrExtractorRequired is returned when a document extractor is not provided.
	ErrExtractorRequired = errors.New("document extractor required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")
)
