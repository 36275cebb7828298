package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/poiesic/docqa/vectorstore"
)

// Index is a brute-force in-memory vector index using cosine similarity.
// It is used in tests and for local single-process runs.
type Index struct {
	mu      sync.RWMutex
	entries []vectorstore.Entry
}

var _ vectorstore.Index = (*Index)(nil)

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{}
}

// Upsert appends entries to the index. Identical text submitted twice
// results in two entries; no content deduplication is performed.
func (ix *Index) Upsert(ctx context.Context, entries []vectorstore.Entry) error {
	for _, entry := range entries {
		if len(entry.Vector) == 0 {
			return fmt.Errorf("%w: entry %q", vectorstore.ErrMissingVector, entry.ID)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = append(ix.entries, entries...)
	return nil
}

// Search returns up to limit entries ranked by descending cosine similarity.
func (ix *Index) Search(ctx context.Context, vector []float32, limit int) ([]vectorstore.Match, error) {
	if limit <= 0 {
		return nil, vectorstore.ErrInvalidLimit
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches := make([]vectorstore.Match, 0, len(ix.entries))
	for _, entry := range ix.entries {
		matches = append(matches, vectorstore.Match{
			Entry: entry,
			Score: cosineSimilarity(entry.Vector, vector),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

// Len returns the number of stored entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Close is a no-op for the in-memory index.
func (ix *Index) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / float32(math.Sqrt(float64(normA))*math.Sqrt(float64(normB)))
}
