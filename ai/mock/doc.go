// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ChatModel,
// and ai.DocumentExtractor for use in unit tests. The mocks allow tests to run
// without external AI service dependencies and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockChat := mock.NewMockChatModel()
//	mockChat.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
//	    return "canned answer", nil
//	}
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockChatModel: Returns a fixed answer string
//   - MockExtractor: Returns the document bytes interpreted as text
package mock
