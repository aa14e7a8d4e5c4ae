package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicLLM implements the LLM interface against the Anthropic
// Messages API, sending the paper as a base64 PDF document block.
type AnthropicLLM struct {
	client anthropic.Client
}

// NewAnthropicLLM creates an Anthropic-backed LLM implementation.
// Returns an error if no API key is available.
func NewAnthropicLLM(cfg Config) (*AnthropicLLM, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set ANTHROPIC_API_KEY or provide in config)", ErrInvalidConfig)
	}

	return &AnthropicLLM{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Generate sends the PDF and prompt to the model and returns the
// generated text with token usage.
func (a *AnthropicLLM) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("%w: missing model", ErrInvalidConfig)
	}
	if len(req.PDF) == 0 {
		return nil, fmt.Errorf("%w: empty PDF", ErrInvalidConfig)
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 4096
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(req.PDF),
				}),
				anthropic.NewTextBlock(req.Prompt),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("%w: no text in response", ErrLLMFailed)
	}

	return &Result{
		Text: b.String(),
		Usage: Usage{
			InputTokens:  message.Usage.InputTokens,
			OutputTokens: message.Usage.OutputTokens,
		},
	}, nil
}
