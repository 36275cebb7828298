package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes for different data types
const (
	turnPrefix = "convturn"
)

// makeTurnKey generates a composite key for a turn.
// Format: prefix:conversationID\x00timestamp:id
// The conversation id is NUL-terminated so one conversation's prefix can
// never match another's, and the timestamp is written in BigEndian order so
// lexicographic iteration yields chronological order.
func makeTurnKey(conversationID string, timestamp time.Time, id string) []byte {
	prefix := makeTurnPrefix(conversationID)
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makeTurnPrefix generates the iteration prefix for one conversation.
// Format: prefix:conversationID\x00
func makeTurnPrefix(conversationID string) []byte {
	prefix := turnPrefix + ":"
	buf := make([]byte, len(prefix)+len(conversationID)+1)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], conversationID)
	buf[offset] = 0x00
	return buf
}
