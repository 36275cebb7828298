package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/vectorstore"
)

// DefaultLimit is the number of chunks retrieved per question unless
// configured otherwise.
const DefaultLimit = 5

// Retriever finds the chunks most semantically relevant to a question.
type Retriever struct {
	embedder ai.Embedder
	index    vectorstore.Index
	limit    int
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLimit sets the maximum number of chunks returned per question.
// Non-positive values fall back to DefaultLimit.
func WithLimit(limit int) Option {
	return func(r *Retriever) error {
		if limit <= 0 {
			limit = DefaultLimit
		}
		r.limit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder ai.Embedder, index vectorstore.Index, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	r := &Retriever{
		embedder: embedder,
		index:    index,
		limit:    DefaultLimit,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds the question and returns up to the configured limit of
// chunks ranked by descending similarity score. Index or embedding faults
// are reported as ErrRetrieval.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]core.RetrievedChunk, error) {
	vector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		r.logger.Error("error embedding question", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	matches, err := r.index.Search(ctx, vector, r.limit)
	if err != nil {
		r.logger.Error("error querying vector index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	results := make([]core.RetrievedChunk, 0, len(matches))
	for _, match := range matches {
		results = append(results, core.RetrievedChunk{
			Chunk: core.Chunk{
				Text:     match.Entry.Text,
				Metadata: match.Entry.Metadata,
			},
			Score: match.Score,
		})
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	r.logger.Debug("chunks retrieved", "count", len(results), "limit", r.limit)
	return results, nil
}
