package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/docqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTurnPopulatesIdentity(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	turn, err := repo.AppendTurn(context.Background(), &core.Turn{
		ConversationID: "conv-1",
		UserQuestion:   "What is in the handbook?",
		Answer:         "Policies and procedures.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, turn.Id)
	assert.False(t, turn.Timestamp.IsZero())
}

func TestGetTurnsChronologicalOrder(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	base := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	// Append out of chronological order; reads must come back sorted.
	for _, offset := range []time.Duration{2 * time.Minute, 0, time.Minute} {
		_, err := repo.AppendTurn(ctx, &core.Turn{
			ConversationID: "conv-1",
			Timestamp:      base.Add(offset),
			UserQuestion:   "q",
			Answer:         "a",
		})
		require.NoError(t, err)
	}

	turns, err := repo.GetTurns(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, turns, 3)

	for i := 1; i < len(turns); i++ {
		assert.True(t, turns[i-1].Timestamp.Before(turns[i].Timestamp) ||
			turns[i-1].Timestamp.Equal(turns[i].Timestamp))
	}
}

func TestGetTurnsUnknownConversation(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	turns, err := repo.GetTurns(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestConversationsAreIsolated(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()

	_, err = repo.AppendTurn(ctx, &core.Turn{ConversationID: "conv-a", UserQuestion: "qa", Answer: "aa"})
	require.NoError(t, err)
	_, err = repo.AppendTurn(ctx, &core.Turn{ConversationID: "conv-a", UserQuestion: "qb", Answer: "ab"})
	require.NoError(t, err)
	_, err = repo.AppendTurn(ctx, &core.Turn{ConversationID: "conv-b", UserQuestion: "qc", Answer: "ac"})
	require.NoError(t, err)

	turnsA, err := repo.GetTurns(ctx, "conv-a")
	require.NoError(t, err)
	assert.Len(t, turnsA, 2)

	turnsB, err := repo.GetTurns(ctx, "conv-b")
	require.NoError(t, err)
	assert.Len(t, turnsB, 1)
	assert.Equal(t, "qc", turnsB[0].UserQuestion)
}

func TestAppendTurnValidation(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = repo.AppendTurn(context.Background(), &core.Turn{
		ConversationID: "conv-1",
		UserQuestion:   "",
		Answer:         "a",
	})
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestAppendTurnClosedBackend(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	_, err = repo.AppendTurn(context.Background(), &core.Turn{
		ConversationID: "conv-1",
		UserQuestion:   "q",
		Answer:         "a",
	})
	assert.Error(t, err)
}
