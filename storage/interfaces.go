package storage

import (
	"context"

	"github.com/poiesic/docqa/core"
)

// ConversationRepository provides operations for managing conversation turns.
// Implementations must be thread-safe and support concurrent access.
type ConversationRepository interface {
	// AppendTurn persists a new turn under its conversation id.
	// Generates an Id if the turn has none and sets the timestamp to the
	// current UTC time if it is zero. Returns the turn with those fields
	// populated. Turns are never overwritten.
	AppendTurn(ctx context.Context, turn *core.Turn) (*core.Turn, error)

	// GetTurns retrieves every turn of a conversation, ordered by timestamp
	// ascending. A conversation id absent from the store yields an empty
	// slice, not an error.
	GetTurns(ctx context.Context, conversationID string) ([]*core.Turn, error)

	// Close closes the repository and releases resources.
	Close() error
}
