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


// Package search retrieves the chunks most relevant to a question.
//
// The Retriever type embeds a free-text question and performs a similarity
// search against the vector index, returning the top-K chunks ranked by
// descending score. No minimum-similarity threshold is enforced; on a
// sparse index low-relevance chunks may still be returned.
package search
