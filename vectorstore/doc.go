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


// Package vectorstore provides the vector index abstraction layer for docqa.
//
// This package defines the Index interface that decouples similarity search
// from any particular vector database. Entries are never mutated once
// written: re-indexing identical text produces additional entries rather
// than overwriting existing ones.
//
// # Implementation Packages
//
//   - vectorstore/qdrant: Production index backed by a Qdrant server
//   - vectorstore/memory: Brute-force in-memory index for tests and local runs
//
// All index implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package vectorstore
