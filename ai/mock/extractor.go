package mock

import "context"

// MockExtractor is a test double for ai.DocumentExtractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, the document bytes are returned as-is, interpreted as text.
	ExtractTextFunc func(ctx context.Context, content []byte, contentType string) (string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor with pass-through behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractText returns the configured extraction result.
func (m *MockExtractor) ExtractText(ctx context.Context, content []byte, contentType string) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, content, contentType)
	}

	return string(content), nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}
