package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted turn for the MockProvider: either a
// diagnosis payload to return or an error to fail with.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves scripted responses in FIFO order and records
// every request it sees. Tests use it to stand in for a real backend,
// e.g. scripting a rate limit followed by a valid diagnosis payload.
// Once the script runs out it reports itself unavailable, which is how
// chain tests assert that no further model call was made.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	next   int
	Calls  []Request
}

// NewMockProvider creates a MockProvider with the given script.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate replays the next scripted response, or ErrProviderUnavailable
// once the script is exhausted.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.script) {
		return nil, &ErrProviderUnavailable{}
	}
	turn := m.script[m.next]
	m.next++

	if turn.Err != nil {
		return nil, turn.Err
	}
	return &Response{
		Content:    turn.Content,
		Usage:      turn.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends one scripted response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CallCount reports how many Generate calls were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
