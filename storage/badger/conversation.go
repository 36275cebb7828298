package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/docqa/core"
	"github.com/poiesic/docqa/storage"
)

// ConversationRepository implements storage.ConversationRepository for BadgerDB.
type ConversationRepository struct {
	backend *Backend
}

var _ storage.ConversationRepository = (*ConversationRepository)(nil)

// NewConversationRepository creates a new ConversationRepository over an open backend.
func NewConversationRepository(backend *Backend) *ConversationRepository {
	return &ConversationRepository{backend: backend}
}

// AppendTurn persists a new turn under its conversation id.
// Generates a uuid Id if the turn has none and stamps the current UTC time
// if the timestamp is zero. Existing turns are never overwritten: the key
// embeds timestamp and id, so every append lands on a fresh key.
func (r *ConversationRepository) AppendTurn(ctx context.Context, turn *core.Turn) (*core.Turn, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	if turn != nil {
		if turn.Id == "" {
			turn.Id = uuid.NewString()
		}
		if turn.Timestamp.IsZero() {
			turn.Timestamp = time.Now().UTC()
		}
	}

	if err := core.ValidateTurn(turn); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTurnKey(turn.ConversationID, turn.Timestamp, turn.Id)
		if err := tx.Set(key, storage.MarshalTurn(turn)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return turn, nil
}

// GetTurns retrieves every turn of a conversation ordered by timestamp
// ascending. Unknown conversation ids yield an empty slice.
func (r *ConversationRepository) GetTurns(ctx context.Context, conversationID string) ([]*core.Turn, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	turns := []*core.Turn{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makeTurnPrefix(conversationID)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				turn, err := storage.UnmarshalTurn(val)
				if err != nil {
					return err
				}
				turns = append(turns, turn)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return turns, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *ConversationRepository) Close() error {
	return nil
}
