package llm

import (
	"context"
)

// Mock is a deterministic LLM implementation for testing.
// It returns queued or fixed responses and records every prompt it sees.
type Mock struct {
	// Response is the fixed text returned by Generate when Queue is empty.
	Response string

	// Queue holds responses consumed in order, one per Generate call.
	// When exhausted, Generate falls back to Response.
	Queue []string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// Prompts stores every prompt passed to Generate, in call order.
	Prompts []string

	next int
}

// NewMock creates a mock LLM with the given fixed response.
func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

// NewMockWithError creates a mock LLM that always returns an error.
func NewMockWithError(err error) *Mock {
	return &Mock{Error: err}
}

// NewMockWithQueue creates a mock LLM that returns the given responses in order.
func NewMockWithQueue(responses ...string) *Mock {
	return &Mock{Queue: responses}
}

// Generate returns the next queued response, the fixed response, or the
// configured error.
func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.Error != nil {
		return "", m.Error
	}

	if m.next < len(m.Queue) {
		resp := m.Queue[m.next]
		m.next++
		return resp, nil
	}

	return m.Response, nil
}

// LastPrompt returns the most recent prompt passed to Generate.
func (m *Mock) LastPrompt() string {
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
