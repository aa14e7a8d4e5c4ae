package llm

import (
	"context"
	"fmt"
)

// MockLLM is a deterministic LLM implementation for testing.
type MockLLM struct {
	// Response is the fixed text returned by Generate. If empty, a
	// default response is generated from the request.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// Usage is the token usage reported with every response.
	Usage Usage

	// LastRequest stores the most recent request passed to Generate.
	LastRequest Request

	// Calls counts Generate invocations.
	Calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or a deterministic one
// derived from the request.
func (m *MockLLM) Generate(ctx context.Context, req Request) (*Result, error) {
	m.Calls++
	m.LastRequest = req

	if m.Error != nil {
		return nil, m.Error
	}

	text := m.Response
	if text == "" {
		text = fmt.Sprintf("# Mock output\n\nModel %s processed %d PDF bytes with a %d-character prompt.\n",
			req.Model, len(req.PDF), len(req.Prompt))
	}

	return &Result{Text: text, Usage: m.Usage}, nil
}
