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


package docqa

import (
	"context"
	"log/slog"

	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/ai/docintel"
	"github.com/poiesic/docqa/ai/openai"
	"github.com/poiesic/docqa/answer"
	"github.com/poiesic/docqa/ingestion"
	"github.com/poiesic/docqa/search"
	"github.com/poiesic/docqa/server"
	"github.com/poiesic/docqa/storage"
	"github.com/poiesic/docqa/storage/badger"
	"github.com/poiesic/docqa/vectorstore"
	"github.com/poiesic/docqa/vectorstore/memory"
	"github.com/poiesic/docqa/vectorstore/qdrant"
)

// App wires storage, AI services, the vector index, and the request
// pipelines into one unit with a single Close.
type App struct {
	backend      *badger.Backend
	turns        storage.ConversationRepository
	provider     ai.Provider
	extractor    ai.DocumentExtractor
	index        vectorstore.Index
	pipeline     *ingestion.Pipeline
	indexer      *ingestion.Indexer
	retriever    *search.Retriever
	orchestrator *answer.Orchestrator
	logger       *slog.Logger
}

// AppOption configures an App.
type AppOption func(*appOptions)

type appOptions struct {
	aiConfig         *ai.Config
	extractionConfig *docintel.Config
	indexConfig      *qdrant.Config
	provider         ai.Provider
	extractor        ai.DocumentExtractor
	index            vectorstore.Index
	retrievalLimit   int
}

// WithAIConfig sets the embedding and chat service configuration.
func WithAIConfig(config *ai.Config) AppOption {
	return func(o *appOptions) {
		o.aiConfig = config
	}
}

// WithExtractionConfig sets the document analysis service configuration.
func WithExtractionConfig(config *docintel.Config) AppOption {
	return func(o *appOptions) {
		o.extractionConfig = config
	}
}

// WithIndexConfig sets the remote vector index configuration.
// When neither an index config nor an index is given, chunks are held
// in an in-process index that is lost on shutdown.
func WithIndexConfig(config *qdrant.Config) AppOption {
	return func(o *appOptions) {
		o.indexConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing aiConfig.
func WithProvider(provider ai.Provider) AppOption {
	return func(o *appOptions) {
		o.provider = provider
	}
}

// WithExtractor injects a pre-built document extractor, bypassing
// extractionConfig.
func WithExtractor(extractor ai.DocumentExtractor) AppOption {
	return func(o *appOptions) {
		o.extractor = extractor
	}
}

// WithIndex injects a pre-built vector index, bypassing indexConfig.
func WithIndex(index vectorstore.Index) AppOption {
	return func(o *appOptions) {
		o.index = index
	}
}

// WithRetrievalLimit sets how many chunks each answer retrieves.
func WithRetrievalLimit(limit int) AppOption {
	return func(o *appOptions) {
		o.retrievalLimit = limit
	}
}

// NewApp opens the conversation store at dbPath and builds the
// ingestion and answer pipelines. An empty dbPath keeps conversations
// in memory.
func NewApp(ctx context.Context, dbPath string, opts ...AppOption) (*App, error) {
	options := &appOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(dbPath, dbPath == "")
	if err != nil {
		return nil, err
	}

	turns := badger.NewConversationRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	extractor := options.extractor
	if extractor == nil {
		if options.extractionConfig == nil {
			provider.Close()
			backend.Close()
			return nil, docintel.ErrEndpointRequired
		}
		extractor, err = docintel.NewClient(*options.extractionConfig)
		if err != nil {
			provider.Close()
			backend.Close()
			return nil, err
		}
	}

	index := options.index
	if index == nil {
		if options.indexConfig != nil {
			index, err = qdrant.NewIndex(ctx, *options.indexConfig)
			if err != nil {
				provider.Close()
				backend.Close()
				return nil, err
			}
		} else {
			index = memory.NewIndex()
		}
	}

	pipeline, err := ingestion.NewPipeline(extractor)
	if err != nil {
		return nil, teardown(err, index, provider, backend)
	}

	indexer, err := ingestion.NewIndexer(provider.Embedder(), index)
	if err != nil {
		return nil, teardown(err, index, provider, backend)
	}

	var retrieverOpts []search.Option
	if options.retrievalLimit > 0 {
		retrieverOpts = append(retrieverOpts, search.WithLimit(options.retrievalLimit))
	}
	retriever, err := search.NewRetriever(provider.Embedder(), index, retrieverOpts...)
	if err != nil {
		indexer.Release()
		return nil, teardown(err, index, provider, backend)
	}

	orchestrator, err := answer.NewOrchestrator(turns, retriever, provider.ChatModel())
	if err != nil {
		indexer.Release()
		return nil, teardown(err, index, provider, backend)
	}

	return &App{
		backend:      backend,
		turns:        turns,
		provider:     provider,
		extractor:    extractor,
		index:        index,
		pipeline:     pipeline,
		indexer:      indexer,
		retriever:    retriever,
		orchestrator: orchestrator,
		logger:       slog.Default(),
	}, nil
}

func teardown(err error, index vectorstore.Index, provider ai.Provider, backend *badger.Backend) error {
	index.Close()
	provider.Close()
	backend.Close()
	return err
}

// Close releases the worker pool, upstream clients, and storage.
func (a *App) Close() error {
	a.indexer.Release()

	if err := a.index.Close(); err != nil {
		a.logger.Error("error closing vector index", "err", err)
	}
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.turns.Close(); err != nil {
		a.logger.Error("error closing conversation repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ConversationRepository returns the conversation store.
func (a *App) ConversationRepository() storage.ConversationRepository {
	return a.turns
}

// Pipeline returns the document ingestion pipeline.
func (a *App) Pipeline() *ingestion.Pipeline {
	return a.pipeline
}

// Indexer returns the chunk indexer.
func (a *App) Indexer() *ingestion.Indexer {
	return a.indexer
}

// Retriever returns the chunk retriever.
func (a *App) Retriever() *search.Retriever {
	return a.retriever
}

// Orchestrator returns the answer orchestrator.
func (a *App) Orchestrator() *answer.Orchestrator {
	return a.orchestrator
}

// NewServer builds the HTTP server over the app's components.
func (a *App) NewServer(opts ...server.Option) (*server.Server, error) {
	return server.NewServer(a.pipeline, a.indexer, a.orchestrator, opts...)
}
