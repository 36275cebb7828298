// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"time"
)

// ValidateTurn validates a Turn according to domain rules.
//
// Validation rules:
//   - ConversationID must not be empty
//   - UserQuestion must not be empty
//   - Answer must not be empty
//   - Timestamp must not be in the future
//
// NOT validated (populated by the repository on append):
//   - Id (empty is valid until the store assigns one)
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.ConversationID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyConversationID)
	}

	if turn.UserQuestion == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyQuestion)
	}

	if turn.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyAnswer)
	}

	if !turn.Timestamp.IsZero() && !IsValidTimestamp(turn.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - Metadata (documents without headers produce chunks with no header path)
//   - DocumentID (0 means the fingerprint has not been assigned yet)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
