package answer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/docqa/ai/mock"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/search"
	"github.com/poiesic/docqa/storage"
	"github.com/poiesic/docqa/storage/badger"
	"github.com/poiesic/docqa/vectorstore"
	"github.com/poiesic/docqa/vectorstore/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, storage.ConversationRepository, *mock.MockChatModel) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	index := memory.NewIndex()
	require.NoError(t, index.Upsert(context.Background(), []vectorstore.Entry{{
		ID:       "warranty",
		Text:     "The warranty period is two years.",
		Vector:   []float32{1, 0, 0},
		Metadata: map[string]string{"Header 1": "Warranty", "document_id": "42"},
	}}))

	retriever, err := search.NewRetriever(embedder, index)
	require.NoError(t, err)

	chat := mock.NewMockChatModel()
	chat.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Two years.", nil
	}

	orch, err := NewOrchestrator(repo, retriever, chat)
	require.NoError(t, err)

	return orch, repo, chat
}

func TestNewOrchestratorRequiresCollaborators(t *testing.T) {
	orch, repo, _ := newTestOrchestrator(t)

	_, err := NewOrchestrator(nil, orch.retriever, mock.NewMockChatModel())
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewOrchestrator(repo, nil, mock.NewMockChatModel())
	assert.ErrorIs(t, err, ErrRetrieverRequired)

	_, err = NewOrchestrator(repo, orch.retriever, nil)
	assert.ErrorIs(t, err, ErrChatModelRequired)
}

func TestAnswerEmptyQuestion(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t)

	_, _, err := orch.Answer(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAnswerNewConversationGeneratesID(t *testing.T) {
	orch, repo, _ := newTestOrchestrator(t)

	result, conversationID, err := orch.Answer(context.Background(), "How long is the warranty?", "")
	require.NoError(t, err)
	assert.NotEmpty(t, conversationID)
	assert.Equal(t, "Two years.", result.Answer)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "Warranty", result.Documents[0]["Header 1"])

	turns, err := repo.GetTurns(context.Background(), conversationID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "How long is the warranty?", turns[0].UserQuestion)
	assert.Equal(t, "Two years.", turns[0].Answer)
}

func TestAnswerUnknownConversationSucceedsWithEmptyHistory(t *testing.T) {
	orch, _, chat := newTestOrchestrator(t)

	var captured string
	chat.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		captured = prompt
		return "Two years.", nil
	}

	_, conversationID, err := orch.Answer(context.Background(), "How long is the warranty?", "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", conversationID)
	assert.NotContains(t, captured, "User: ")
	assert.NotContains(t, captured, "Assistant: ")
}

func TestAnswerAppendsToExistingConversation(t *testing.T) {
	orch, repo, chat := newTestOrchestrator(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, qa := range [][2]string{
		{"What product is this?", "A coffee grinder."},
		{"Does it ship abroad?", "Yes, worldwide."},
	} {
		_, err := repo.AppendTurn(ctx, &core.Turn{
			ConversationID: "conv-1",
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
			UserQuestion:   qa[0],
			Answer:         qa[1],
		})
		require.NoError(t, err)
	}

	var captured string
	chat.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		captured = prompt
		return "Two years.", nil
	}

	_, conversationID, err := orch.Answer(ctx, "How long is the warranty?", "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", conversationID)

	// History precedes the retrieved evidence in the prompt.
	assert.Contains(t, captured, "User: What product is this?\nAssistant: A coffee grinder.")
	assert.Contains(t, captured, "User: Does it ship abroad?\nAssistant: Yes, worldwide.")

	turns, err := repo.GetTurns(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "What product is this?", turns[0].UserQuestion)
	assert.Equal(t, "Does it ship abroad?", turns[1].UserQuestion)
	assert.Equal(t, "How long is the warranty?", turns[2].UserQuestion)
	for i := 1; i < len(turns); i++ {
		assert.False(t, turns[i].Timestamp.Before(turns[i-1].Timestamp))
	}
}

func TestAnswerRetrievalFaultWritesNoTurn(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding backend down")
	}

	retriever, err := search.NewRetriever(embedder, memory.NewIndex())
	require.NoError(t, err)

	orch, err := NewOrchestrator(repo, retriever, mock.NewMockChatModel())
	require.NoError(t, err)

	_, _, err = orch.Answer(context.Background(), "How long is the warranty?", "conv-err")
	assert.ErrorIs(t, err, search.ErrRetrieval)

	turns, err := repo.GetTurns(context.Background(), "conv-err")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestAnswerGenerationFaultWritesNoTurn(t *testing.T) {
	orch, repo, chat := newTestOrchestrator(t)

	chat.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model overloaded")
	}

	_, _, err := orch.Answer(context.Background(), "How long is the warranty?", "conv-gen")
	assert.ErrorIs(t, err, ErrGeneration)

	turns, err := repo.GetTurns(context.Background(), "conv-gen")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
