package vectorstore

import "context"

// Entry is one indexed chunk: its text, embedding vector, and metadata.
// Entries are created during indexing and never mutated afterwards.
type Entry struct {
	ID       string            // Unique per write; duplicates of the same text get distinct IDs
	Text     string            // The chunk text
	Vector   []float32         // Embedding of Text
	Metadata map[string]string // Header path and document fingerprint
}

// Match is a search hit with its similarity score.
type Match struct {
	Entry Entry
	Score float32
}

// Index persists embedded chunks and answers similarity queries.
// Implementations must be thread-safe for concurrent use.
type Index interface {
	// Upsert writes entries to the index. Entries with IDs not already
	// present are added; nothing deduplicates by content. Partial writes
	// are possible when an error occurs mid-batch and are not rolled back.
	Upsert(ctx context.Context, entries []Entry) error

	// Search returns up to limit entries ranked by descending similarity
	// to the query vector. No minimum-similarity threshold is applied.
	Search(ctx context.Context, vector []float32, limit int) ([]Match, error)

	// Close releases resources held by the index client.
	Close() error
}
