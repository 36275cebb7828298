package answer

import "errors"

var (
	// ErrEmptyQuestion indicates the user question was missing or blank.
	ErrEmptyQuestion = errors.New("user question required")

	// ErrGeneration indicates the chat model failed to produce an answer.
	ErrGeneration = errors.New("answer generation failed")

	// ErrRepositoryRequired is returned when a conversation repository is not provided.
	ErrRepositoryRequired = errors.New("conversation repository required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrChatModelRequired is returned when a chat model is not provided.
	ErrChatModelRequired = errors.New("chat model required")
)
