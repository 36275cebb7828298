package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/search"
	"github.com/poiesic/docqa/storage"
)

// Orchestrator answers questions grounded in retrieved chunks and the
// conversation's own history, persisting one turn per answered question.
type Orchestrator struct {
	turns     storage.ConversationRepository
	retriever *search.Retriever
	chat      ai.ChatModel
	template  string
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPromptTemplate overrides the default instruction template.
func WithPromptTemplate(template string) Option {
	return func(o *Orchestrator) error {
		if template != "" {
			o.template = template
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new answer orchestrator.
func NewOrchestrator(
	turns storage.ConversationRepository,
	retriever *search.Retriever,
	chat ai.ChatModel,
	opts ...Option,
) (*Orchestrator, error) {
	if turns == nil {
		return nil, ErrRepositoryRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if chat == nil {
		return nil, ErrChatModelRequired
	}

	o := &Orchestrator{
		turns:     turns,
		retriever: retriever,
		chat:      chat,
		template:  DefaultPromptTemplate,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Answer produces a grounded answer for the question and records the turn.
// A blank conversationID starts a fresh conversation with a generated id;
// the id actually used is always returned so the caller can continue the
// conversation. No turn is written when any upstream step fails.
func (o *Orchestrator) Answer(ctx context.Context, question, conversationID string) (*core.AnswerResult, string, error) {
	if strings.TrimSpace(question) == "" {
		return nil, "", ErrEmptyQuestion
	}

	if conversationID == "" {
		conversationID = uuid.NewString()
		o.logger.Debug("starting new conversation", "conversationID", conversationID)
	}

	// Conversation ids absent from the store yield an empty history.
	previousTurns, err := o.turns.GetTurns(ctx, conversationID)
	if err != nil {
		o.logger.Error("error loading conversation history", "conversationID", conversationID, "err", err)
		return nil, "", err
	}
	transcript := RenderTranscript(previousTurns)

	retrieved, err := o.retriever.Retrieve(ctx, question)
	if err != nil {
		o.logger.Error("error retrieving chunks", "conversationID", conversationID, "err", err)
		return nil, "", err
	}

	prompt := BuildPrompt(o.template, transcript, retrieved, question)

	response, err := o.chat.Generate(ctx, prompt)
	if err != nil {
		o.logger.Error("error generating answer", "conversationID", conversationID, "err", err)
		return nil, "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	_, err = o.turns.AppendTurn(ctx, &core.Turn{
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC(),
		UserQuestion:   question,
		Answer:         response,
	})
	if err != nil {
		o.logger.Error("error persisting turn", "conversationID", conversationID, "err", err)
		return nil, "", err
	}

	documents := make([]map[string]string, 0, len(retrieved))
	for _, chunk := range retrieved {
		metadata := make(map[string]string, len(chunk.Chunk.Metadata))
		for k, v := range chunk.Chunk.Metadata {
			metadata[k] = v
		}
		documents = append(documents, metadata)
	}

	o.logger.Info("answer generated",
		"conversationID", conversationID,
		"historyTurns", len(previousTurns),
		"retrievedChunks", len(retrieved))

	return &core.AnswerResult{Answer: response, Documents: documents}, conversationID, nil
}
