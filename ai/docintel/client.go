package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/docqa/ai"
)

const defaultModel = "prebuilt-layout"

// Common errors for extraction client configuration
var (
	ErrEndpointRequired = errors.New("docintel: Endpoint is required")
	ErrAPIKeyRequired   = errors.New("docintel: APIKey is required")
)

// Config holds connection details for the document extraction service.
type Config struct {
	// Endpoint is the base URL of the extraction service.
	Endpoint string

	// APIKey authenticates requests; sent in the api-key header.
	APIKey string

	// Model selects the extraction model. Defaults to "prebuilt-layout".
	Model string

	// Timeout bounds each extraction round-trip. Defaults to 120s;
	// layout analysis of large documents is slow.
	Timeout time.Duration
}

// Client implements ai.DocumentExtractor against a document-intelligence
// style REST API: document bytes in, markdown-flavored text out.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// analyzeResponse is the subset of the service response we consume.
type analyzeResponse struct {
	Content string `json:"content"`
}

// NewClient creates a new extraction client.
//
// Returns ai.DocumentExtractor interface to enforce abstraction.
func NewClient(cfg Config) (ai.DocumentExtractor, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		logger:   slog.Default().With("component", "docintel-client"),
	}, nil
}

// ExtractText submits document bytes for analysis and returns the extracted
// markdown text. The service is asked for markdown output so that section
// headers survive extraction and can drive chunking.
func (c *Client) ExtractText(ctx context.Context, content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", errors.New("docintel: empty document content")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	analyzeURL := fmt.Sprintf("%s/documentModels/%s:analyze?outputContentFormat=markdown",
		c.endpoint, url.PathEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, analyzeURL, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("api-key", c.apiKey)

	c.logger.Debug("submitting document for analysis", "model", c.model, "bytes", len(content))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("analysis request rejected", "status", resp.Status, "body", string(body))
		return "", fmt.Errorf("docintel: analyze returned %s", resp.Status)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("docintel: decoding analyze response: %w", err)
	}

	return result.Content, nil
}
