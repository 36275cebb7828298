package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultFetchTimeout = 30 * time.Second

// Fetcher retrieves raw document bytes for a fetchable reference
// (a blob URL or any plain HTTP location).
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewFetcher creates a fetcher with the given per-request timeout.
// A zero timeout uses the 30s default.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = defaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: slog.Default().With("component", "fetcher"),
	}
}

// Fetch downloads the document at url and returns its bytes and content type.
// Non-2xx responses and network faults are reported as ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Error("error downloading document", "url", url, "err", err)
		return nil, "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Error("document download rejected", "url", url, "status", resp.Status)
		return nil, "", fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrFetch, err)
	}

	return content, resp.Header.Get("Content-Type"), nil
}
