package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/docqa/ai"
	"github.com/poiesic/docqa/core"
)

// Pipeline extracts text from uploaded documents and splits it into
// header-bounded chunks ready for indexing.
type Pipeline struct {
	extractor ai.DocumentExtractor
	fetcher   *Fetcher
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithFetchTimeout sets the timeout for fetching document references.
func WithFetchTimeout(timeout time.Duration) PipelineOption {
	return func(p *Pipeline) error {
		p.fetcher = NewFetcher(timeout)
		return nil
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(extractor ai.DocumentExtractor, opts ...PipelineOption) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	p := &Pipeline{
		extractor: extractor,
		fetcher:   NewFetcher(0),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// IngestBytes extracts text from document bytes and splits it into chunks.
// Every returned chunk carries the fingerprint of the extracted text as its
// DocumentID. Extraction faults are reported as ErrExtraction.
func (p *Pipeline) IngestBytes(ctx context.Context, content []byte, contentType string) ([]core.Chunk, error) {
	text, err := p.extractor.ExtractText(ctx, content, contentType)
	if err != nil {
		p.logger.Error("error extracting document text", "bytes", len(content), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	chunks := SplitMarkdown(text)

	docID := core.IDFromContent(text)
	for i := range chunks {
		chunks[i].DocumentID = docID
	}

	p.logger.Info("document ingested", "documentID", docID, "chunks", len(chunks))
	return chunks, nil
}

// IngestURL fetches a document reference, then extracts and chunks it.
// Download faults are reported as ErrFetch, extraction faults as ErrExtraction.
func (p *Pipeline) IngestURL(ctx context.Context, url string) ([]core.Chunk, error) {
	content, contentType, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.IngestBytes(ctx, content, contentType)
}
