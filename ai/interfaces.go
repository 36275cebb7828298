package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel produces text completions for fully assembled prompts.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Generate returns the model's text response for the prompt.
	// Decoding is pinned to temperature 0 so that identical prompts
	// produce the least-random completion the model offers.
	Generate(ctx context.Context, prompt string) (string, error)
}

// DocumentExtractor converts raw document bytes into structured,
// markdown-flavored text with headers preserved.
// Implementations must be thread-safe for concurrent use.
type DocumentExtractor interface {
	// ExtractText submits document content to the extraction service and
	// returns the extracted markdown text. The contentType hints at the
	// document format (e.g. "application/pdf"); implementations may pass
	// it through to the service unchanged.
	ExtractText(ctx context.Context, content []byte, contentType string) (string, error)
}

// Provider aggregates the embedding and chat services for convenient
// initialization and lifecycle management. A provider creates and manages
// Embedder and ChatModel instances, ensuring they share configuration
// and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ChatModel returns the chat completion service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
