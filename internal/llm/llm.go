// Package llm provides access to hosted language models for paper
// summarization. It defines a provider-agnostic interface with
// concrete Anthropic and OpenAI-compatible implementations plus a
// deterministic mock for testing, and the static model-alias table
// used to resolve short names like "sonnet" to concrete model ids.
package llm

import (
	"context"
	"errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
	ErrUnknownModel  = errors.New("unknown model")
)

// LLM is the interface for sending a paper to a language model.
// Implementations must be stateless and safe for concurrent use.
type LLM interface {
	// Generate sends the PDF and prompt to the model and returns the
	// generated markdown together with token usage.
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Request carries one generation call.
type Request struct {
	// Model is the concrete model identifier (already alias-resolved).
	Model string

	// Prompt is the instruction text sent alongside the document.
	Prompt string

	// PDF holds the raw bytes of the paper.
	PDF []byte

	// MaxTokens caps the response length (0 = provider default).
	MaxTokens int
}

// Result is the model's response.
type Result struct {
	Text  string
	Usage Usage
}

// Usage reports token consumption for a single call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Config holds provider configuration.
type Config struct {
	// APIKey authenticates against the provider. When empty the
	// provider-specific environment variable is consulted.
	APIKey string
}

// New returns the LLM implementation responsible for the given model
// identifier: Claude-shaped ids go to the Anthropic client, everything
// else to the OpenAI-compatible one.
func New(model string, cfg Config) (LLM, error) {
	if IsClaudeModel(model) {
		return NewAnthropicLLM(cfg)
	}
	return NewOpenAILLM(cfg)
}
