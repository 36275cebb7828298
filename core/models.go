package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a deterministic identifier derived from document content.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a header-bounded span of extracted document text together with the
// section-path metadata that produced it. Chunks have no identity beyond their
// content; once indexed they live only inside the vector index.
type Chunk struct {
	DocumentID ID                // Fingerprint of the source document's extracted text
	Text       string            // The chunk body, header lines stripped
	Metadata   map[string]string // Header path, e.g. "Header 1".."Header 3"
}

// Turn is one question/answer pair persisted under a conversation id.
// Turns are append-only; they are never mutated or deleted.
type Turn struct {
	Id             string
	ConversationID string
	Timestamp      time.Time
	UserQuestion   string
	Answer         string
}

// RetrievedChunk is a chunk returned from similarity search with its score.
type RetrievedChunk struct {
	Chunk Chunk
	Score float32
}

// AnswerResult is the outcome of one grounded answer request.
// It is transient; only the question/answer text is persisted as a Turn.
type AnswerResult struct {
	Answer    string
	Documents []map[string]string // Metadata of the chunks used as grounding context
}
