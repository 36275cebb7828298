package memory

import (
	"context"
	"testing"

	"github.com/poiesic/docqa/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRanksByDescendingSimilarity(t *testing.T) {
	ix := NewIndex()
	ctx := context.Background()

	err := ix.Upsert(ctx, []vectorstore.Entry{
		{ID: "a", Text: "orthogonal", Vector: []float32{0, 1, 0}},
		{ID: "b", Text: "exact", Vector: []float32{1, 0, 0}},
		{ID: "c", Text: "close", Vector: []float32{0.9, 0.1, 0}},
	})
	require.NoError(t, err)

	matches, err := ix.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "b", matches[0].Entry.ID)
	assert.Equal(t, "c", matches[1].Entry.ID)
	assert.Equal(t, "a", matches[2].Entry.ID)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	assert.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
}

func TestSearchHonorsLimit(t *testing.T) {
	ix := NewIndex()
	ctx := context.Background()

	entries := make([]vectorstore.Entry, 8)
	for i := range entries {
		entries[i] = vectorstore.Entry{ID: string(rune('a' + i)), Vector: []float32{float32(i + 1), 1}}
	}
	require.NoError(t, ix.Upsert(ctx, entries))

	matches, err := ix.Search(ctx, []float32{1, 1}, 5)
	require.NoError(t, err)
	assert.Len(t, matches, 5)

	_, err = ix.Search(ctx, []float32{1, 1}, 0)
	assert.ErrorIs(t, err, vectorstore.ErrInvalidLimit)
}

func TestUpsertKeepsDuplicateText(t *testing.T) {
	// Re-indexing identical content is not deduplicated: both writes land.
	ix := NewIndex()
	ctx := context.Background()

	entry := vectorstore.Entry{Text: "same chunk", Vector: []float32{1, 2, 3}}

	entry.ID = "first"
	require.NoError(t, ix.Upsert(ctx, []vectorstore.Entry{entry}))
	entry.ID = "second"
	require.NoError(t, ix.Upsert(ctx, []vectorstore.Entry{entry}))

	assert.Equal(t, 2, ix.Len())
}

func TestUpsertRejectsMissingVector(t *testing.T) {
	ix := NewIndex()
	err := ix.Upsert(context.Background(), []vectorstore.Entry{{ID: "x", Text: "no vector"}})
	assert.ErrorIs(t, err, vectorstore.ErrMissingVector)
}
