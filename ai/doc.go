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


// Package ai provides abstractions for the AI services used in docqa.
//
// This package defines interfaces for text embeddings, chat completions, and
// document text extraction. It follows the dependency inversion principle,
// allowing the pipelines and the answer orchestrator to depend on abstractions
// rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - ChatModel: Produces text completions for assembled prompts
//   - DocumentExtractor: Converts raw document bytes into markdown-flavored text
//
// Provider aggregates the embedding and chat services, which share
// configuration and lifecycle.
//
// # Implementation Packages
//
// The ai package includes three implementation sub-packages:
//
//   - ai/openai: Production embedder and chat model using OpenAI-compatible APIs
//   - ai/docintel: Production extractor using a document-intelligence REST API
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, docintel.NewClient, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockChatModel,
// mock.NewMockExtractor) return CONCRETE types to enable test assertions and
// behavior injection via the mock's public fields and methods.
package ai
