package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/docqa/ai/mock"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWritesAllChunks(t *testing.T) {
	index := memory.NewIndex()
	indexer, err := NewIndexer(mock.NewMockEmbedder(), index, WithPoolSize(2))
	require.NoError(t, err)
	defer indexer.Release()

	chunks := []core.Chunk{
		{DocumentID: 7, Text: "first chunk", Metadata: map[string]string{"Header 1": "A"}},
		{DocumentID: 7, Text: "second chunk", Metadata: map[string]string{"Header 1": "B"}},
		{DocumentID: 7, Text: "third chunk", Metadata: map[string]string{"Header 1": "C"}},
	}

	indexed, err := indexer.Index(context.Background(), chunks)
	require.NoError(t, err)
	assert.Len(t, indexed, 3)
	assert.Equal(t, 3, index.Len())
}

func TestReindexingCreatesDuplicateEntries(t *testing.T) {
	// No deduplication exists: indexing the same chunk set twice doubles
	// the number of entries in the index.
	index := memory.NewIndex()
	indexer, err := NewIndexer(mock.NewMockEmbedder(), index)
	require.NoError(t, err)
	defer indexer.Release()

	chunks := []core.Chunk{{DocumentID: 1, Text: "same text every time"}}

	_, err = indexer.Index(context.Background(), chunks)
	require.NoError(t, err)
	_, err = indexer.Index(context.Background(), chunks)
	require.NoError(t, err)

	assert.Equal(t, 2, index.Len())
}

func TestIndexPartialFailureNotRolledBack(t *testing.T) {
	index := memory.NewIndex()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == "poison" {
			return nil, errors.New("embedding service down")
		}
		return []float32{1, 2, 3}, nil
	}

	// Single worker keeps the write order deterministic.
	indexer, err := NewIndexer(embedder, index, WithPoolSize(1))
	require.NoError(t, err)
	defer indexer.Release()

	chunks := []core.Chunk{
		{DocumentID: 1, Text: "fine"},
		{DocumentID: 1, Text: "poison"},
		{DocumentID: 1, Text: "also fine"},
	}

	_, err = indexer.Index(context.Background(), chunks)
	assert.ErrorIs(t, err, ErrIndexing)

	// Chunks written before and after the failure stay in the index.
	assert.Equal(t, 2, index.Len())
}

func TestNewIndexerRequiredArguments(t *testing.T) {
	_, err := NewIndexer(nil, memory.NewIndex())
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewIndexer(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}
