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


// Package storage provides the conversation store abstraction for docqa.
//
// This package defines the ConversationRepository interface which decouples
// turn persistence from any particular backend. Turns are append-only: the
// repository never mutates or deletes a persisted turn.
//
// # Constructor Return Type Pattern
//
// Public constructors return the ConversationRepository interface to enforce
// abstraction and enable alternative backends:
//
//	repo, backend, err := badger.NewConversationRepository(path)
//
// # Consistency
//
// The store offers no transactional guarantee across a read-history /
// write-turn sequence. Two concurrent answer requests for the same
// conversation id may interleave their reads and writes; ordering is
// last-write-wins by timestamp.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
