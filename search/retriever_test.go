package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/docqa/ai/mock"
	"github.com/poiesic/docqa/vectorstore"
	"github.com/poiesic/docqa/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedder maps known texts to fixed axis-aligned vectors so
// similarity ordering is fully controlled by the test.
func axisEmbedder(vectors map[string][]float32) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return []float32{0, 0, 1}, nil
	}
	return embedder
}

func TestRetrieveTopKDescending(t *testing.T) {
	index := memory.NewIndex()
	ctx := context.Background()

	// Eight entries at varying similarity to the question vector.
	for i := 0; i < 8; i++ {
		err := index.Upsert(ctx, []vectorstore.Entry{{
			ID:     fmt.Sprintf("e%d", i),
			Text:   fmt.Sprintf("entry %d", i),
			Vector: []float32{float32(i), 1, 0},
		}})
		require.NoError(t, err)
	}

	embedder := axisEmbedder(map[string][]float32{"question": {1, 0, 0}})
	retriever, err := NewRetriever(embedder, index, WithLimit(5))
	require.NoError(t, err)

	results, err := retriever.Retrieve(ctx, "question")
	require.NoError(t, err)

	// Never more than K results, ranked by descending score.
	assert.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRetrieveCarriesMetadata(t *testing.T) {
	index := memory.NewIndex()
	ctx := context.Background()

	err := index.Upsert(ctx, []vectorstore.Entry{{
		ID:       "e1",
		Text:     "refund policy text",
		Vector:   []float32{1, 0, 0},
		Metadata: map[string]string{"Header 1": "Policies", "Header 2": "Refunds"},
	}})
	require.NoError(t, err)

	retriever, err := NewRetriever(axisEmbedder(map[string][]float32{"q": {1, 0, 0}}), index)
	require.NoError(t, err)

	results, err := retriever.Retrieve(ctx, "q")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "refund policy text", results[0].Chunk.Text)
	assert.Equal(t, "Refunds", results[0].Chunk.Metadata["Header 2"])
}

func TestRetrieveEmbeddingFault(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	retriever, err := NewRetriever(embedder, memory.NewIndex())
	require.NoError(t, err)

	_, err = retriever.Retrieve(context.Background(), "q")
	assert.ErrorIs(t, err, ErrRetrieval)
}

func TestNewRetrieverRequiredArguments(t *testing.T) {
	_, err := NewRetriever(nil, memory.NewIndex())
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewRetriever(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrIndexRequired)
}
