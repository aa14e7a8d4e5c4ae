package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAILLM implements the LLM interface for OpenAI-compatible models,
// used when the resolved identifier is not a Claude one. The paper is
// attached as a file content part with inline base64 data.
type OpenAILLM struct {
	client openai.Client
}

// NewOpenAILLM creates an OpenAI-backed LLM implementation.
// Returns an error if no API key is available.
func NewOpenAILLM(cfg Config) (*OpenAILLM, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or provide in config)", ErrInvalidConfig)
	}

	return &OpenAILLM{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Generate sends the PDF and prompt to the model and returns the
// generated text with token usage.
func (o *OpenAILLM) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("%w: missing model", ErrInvalidConfig)
	}
	if len(req.PDF) == 0 {
		return nil, fmt.Errorf("%w: empty PDF", ErrInvalidConfig)
	}

	fileData := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(req.PDF)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
					Filename: openai.String("paper.pdf"),
					FileData: openai.String(fileData),
				}),
				openai.TextContentPart(req.Prompt),
			}),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLLMFailed, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response generated", ErrLLMFailed)
	}

	return &Result{
		Text: completion.Choices[0].Message.Content,
		Usage: Usage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
	}, nil
}
