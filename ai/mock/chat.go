package mock

import "context"

const defaultMockAnswer = "I don't know."

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
type MockChatModel struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a fixed answer string.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
	prompts   []string
}

// NewMockChatModel creates a mock chat model returning a fixed answer.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// Generate records the prompt and returns the configured response.
func (m *MockChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}

	return defaultMockAnswer, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockChatModel) CallCount() int {
	return m.callCount
}

// Prompts returns every prompt passed to Generate, in call order.
func (m *MockChatModel) Prompts() []string {
	return m.prompts
}
