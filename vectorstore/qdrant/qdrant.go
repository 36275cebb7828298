package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/docqa/vectorstore"
)

const defaultTimeout = 15 * time.Second

// Config holds connection details for a Qdrant vector index.
type Config struct {
	// URL is the base URL of the Qdrant server, e.g. "http://localhost:6333".
	URL string

	// APIKey is sent in the api-key header when non-empty.
	APIKey string

	// Collection is the target collection (the index name).
	Collection string

	// Dimension is the embedding vector size; the collection is created
	// with this size if it does not exist.
	Dimension int

	// Timeout bounds each index round-trip. Defaults to 15s.
	Timeout time.Duration
}

// Index is a minimal REST client to Qdrant implementing vectorstore.Index.
// It assumes cosine distance and creates the collection if missing.
type Index struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
	logger     *slog.Logger
}

var _ vectorstore.Index = (*Index)(nil)

// point mirrors the Qdrant upsert payload for one entry.
type point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// NewIndex creates a Qdrant-backed index and ensures the collection exists.
//
// Returns vectorstore.Index interface to enforce abstraction.
func NewIndex(ctx context.Context, cfg Config) (vectorstore.Index, error) {
	if cfg.URL == "" {
		return nil, errors.New("qdrant: URL is required")
	}
	if cfg.Collection == "" {
		return nil, errors.New("qdrant: Collection is required")
	}
	if cfg.Dimension <= 0 {
		return nil, errors.New("qdrant: Dimension must be positive")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ix := &Index{
		url:        strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "qdrant-index", "collection", cfg.Collection),
	}

	// Create collection if not exists; Qdrant returns 200 for an existing
	// collection with the same schema.
	body := map[string]any{
		"vectors": map[string]any{
			"size":     cfg.Dimension,
			"distance": "Cosine",
		},
	}
	if err := ix.putJSON(ctx, fmt.Sprintf("%s/collections/%s", ix.url, ix.collection), body); err != nil {
		return nil, fmt.Errorf("%w: %w", vectorstore.ErrUnavailable, err)
	}

	return ix, nil
}

// Upsert writes entries as points. Entry IDs become point ids, so callers
// must supply fresh IDs for every write; identical text written twice lands
// as two points.
func (ix *Index) Upsert(ctx context.Context, entries []vectorstore.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	points := make([]point, len(entries))
	for i, entry := range entries {
		if len(entry.Vector) == 0 {
			return fmt.Errorf("%w: entry %q", vectorstore.ErrMissingVector, entry.ID)
		}
		payload := map[string]any{"text": entry.Text}
		for k, v := range entry.Metadata {
			payload[k] = v
		}
		points[i] = point{ID: entry.ID, Vector: entry.Vector, Payload: payload}
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", ix.url, ix.collection)
	if err := ix.putJSON(ctx, url, map[string]any{"points": points}); err != nil {
		return fmt.Errorf("%w: %w", vectorstore.ErrUnavailable, err)
	}
	return nil
}

// Search performs a similarity query and returns up to limit matches with
// their payloads, ranked by descending score.
func (ix *Index) Search(ctx context.Context, vector []float32, limit int) ([]vectorstore.Match, error) {
	if limit <= 0 {
		return nil, vectorstore.ErrInvalidLimit
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", ix.url, ix.collection)
	if err := ix.postJSON(ctx, url, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", vectorstore.ErrUnavailable, err)
	}

	matches := make([]vectorstore.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		entry := vectorstore.Entry{
			ID:       fmt.Sprintf("%v", r.ID),
			Metadata: make(map[string]string),
		}
		for k, v := range r.Payload {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if k == "text" {
				entry.Text = s
				continue
			}
			entry.Metadata[k] = s
		}
		matches = append(matches, vectorstore.Match{Entry: entry, Score: r.Score})
	}
	return matches, nil
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (ix *Index) Close() error {
	return nil
}

func (ix *Index) putJSON(ctx context.Context, url string, body any) error {
	return ix.doJSON(ctx, http.MethodPut, url, body, nil)
}

func (ix *Index) postJSON(ctx context.Context, url string, body any, out any) error {
	return ix.doJSON(ctx, http.MethodPost, url, body, out)
}

func (ix *Index) doJSON(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if ix.apiKey != "" {
		req.Header.Set("api-key", ix.apiKey)
	}

	resp, err := ix.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		ix.logger.Error("qdrant request failed", "method", method, "url", url, "status", resp.Status)
		return fmt.Errorf("qdrant %s %s: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
