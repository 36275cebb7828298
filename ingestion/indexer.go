package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/vectorstore"
)

// Indexer embeds chunks and writes them into the vector index.
// Embedding and upserting run on a worker pool, but Index blocks until the
// whole batch has settled so upload requests observe the final outcome.
type Indexer struct {
	embedder ai.Embedder
	index    vectorstore.Index
	pool     *ants.Pool
	logger   *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) IndexerOption {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}

		if ix.pool != nil {
			ix.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithIndexerLogger sets a custom logger.
// Default is slog.Default().
func WithIndexerLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new indexer.
func NewIndexer(embedder ai.Embedder, index vectorstore.Index, opts ...IndexerOption) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		embedder: embedder,
		index:    index,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}

	return ix, nil
}

// Index embeds each chunk and upserts {text, vector, metadata} into the
// vector index. Every write gets a fresh point id, so re-indexing identical
// chunks creates duplicate entries. A failing chunk does not roll back
// chunks already written; the first failure is reported as ErrIndexing.
// Returns the chunks on success.
func (ix *Indexer) Index(ctx context.Context, chunks []core.Chunk) ([]core.Chunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)

		submitErr := ix.pool.Submit(func() {
			defer wg.Done()

			if err := ix.indexOne(ctx, chunk); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()

	if firstErr != nil {
		ix.logger.Error("error indexing chunks", "chunks", len(chunks), "err", firstErr)
		return nil, fmt.Errorf("%w: %w", ErrIndexing, firstErr)
	}

	ix.logger.Info("chunks indexed", "count", len(chunks))
	return chunks, nil
}

// indexOne embeds one chunk and writes it as a single entry.
func (ix *Indexer) indexOne(ctx context.Context, chunk core.Chunk) error {
	vector, err := ix.embedder.EmbedText(ctx, chunk.Text)
	if err != nil {
		return err
	}

	metadata := make(map[string]string, len(chunk.Metadata)+1)
	for k, v := range chunk.Metadata {
		metadata[k] = v
	}
	metadata["document_id"] = strconv.FormatUint(uint64(chunk.DocumentID), 10)

	entry := vectorstore.Entry{
		ID:       uuid.NewString(),
		Text:     chunk.Text,
		Vector:   vector,
		Metadata: metadata,
	}
	return ix.index.Upsert(ctx, []vectorstore.Entry{entry})
}

// Release releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
