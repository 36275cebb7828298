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


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poiesic/docqa/core"
)

// Common errors for server operations
var (
	ErrIngestorRequired = errors.New("ingestor is required")
	ErrIndexerRequired  = errors.New("indexer is required")
	ErrAnswererRequired = errors.New("answerer is required")
)

// Ingestor turns raw document bytes or a URL into chunks.
type Ingestor interface {
	IngestBytes(ctx context.Context, content []byte, contentType string) ([]core.Chunk, error)
	IngestURL(ctx context.Context, url string) ([]core.Chunk, error)
}

// ChunkIndexer embeds chunks and writes them to the vector index.
type ChunkIndexer interface {
	Index(ctx context.Context, chunks []core.Chunk) ([]core.Chunk, error)
}

// Answerer produces a grounded answer and the conversation id it was
// recorded under.
type Answerer interface {
	Answer(ctx context.Context, question, conversationID string) (*core.AnswerResult, string, error)
}

// Server routes HTTP requests onto the ingestion and answer components.
type Server struct {
	ingestor Ingestor
	indexer  ChunkIndexer
	answerer Answerer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default() with a component attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates a new HTTP server over the given components.
func NewServer(ingestor Ingestor, indexer ChunkIndexer, answerer Answerer, opts ...Option) (*Server, error) {
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	s := &Server{
		ingestor: ingestor,
		indexer:  indexer,
		answerer: answerer,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /answer", s.handleAnswer)
	return s.logRequests(mux)
}
