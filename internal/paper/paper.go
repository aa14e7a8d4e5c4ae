// Package paper orchestrates a single summarize or transcribe run:
// read the resolved PDF, load the prompt, call the model, and write
// the resulting markdown.
package paper

import (
	"context"
	"fmt"
	"os"

	"github.com/nutshell-tools/nutshell/internal/llm"
	"github.com/nutshell-tools/nutshell/internal/prompt"
)

// Token limits per operation, transcriptions need the larger budget.
const (
	SummarizeMaxTokens  = 4096
	TranscribeMaxTokens = 16384
)

// transcriptionDisclaimer is prepended to saved transcriptions.
const transcriptionDisclaimer = "<!-- This is an AI-generated transcript of a PDF. Certain elements of the original document, such as figures and images, have been replaced with descriptions. -->\n\n"

// Config selects the model and prompt for one run.
type Config struct {
	// Model is the concrete, alias-resolved model identifier.
	Model string

	// PromptName names an embedded template or a prompt file path.
	PromptName string

	// MaxTokens caps the response (0 = operation default).
	MaxTokens int
}

// Document is the outcome of a run.
type Document struct {
	Text  string
	Model string
	Usage llm.Usage
}

// Summarize sends the PDF at pdfPath to the model and returns the
// summary document.
func Summarize(ctx context.Context, model llm.LLM, pdfPath string, cfg Config) (*Document, error) {
	if cfg.PromptName == "" {
		cfg.PromptName = prompt.DefaultSummarize
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = SummarizeMaxTokens
	}
	return run(ctx, model, pdfPath, cfg)
}

// Transcribe sends the PDF at pdfPath to the model and returns the
// full transcription document.
func Transcribe(ctx context.Context, model llm.LLM, pdfPath string, cfg Config) (*Document, error) {
	if cfg.PromptName == "" {
		cfg.PromptName = prompt.DefaultTranscribe
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = TranscribeMaxTokens
	}
	return run(ctx, model, pdfPath, cfg)
}

func run(ctx context.Context, model llm.LLM, pdfPath string, cfg Config) (*Document, error) {
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	promptText, err := prompt.Load(cfg.PromptName)
	if err != nil {
		return nil, err
	}

	result, err := model.Generate(ctx, llm.Request{
		Model:     cfg.Model,
		Prompt:    promptText,
		PDF:       pdf,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &Document{Text: result.Text, Model: cfg.Model, Usage: result.Usage}, nil
}

// SaveSummary writes a summary document to path.
func SaveSummary(doc *Document, path string) error {
	return os.WriteFile(path, []byte(doc.Text), 0644)
}

// SaveTranscription writes a transcription to path with the
// AI-transcript disclaimer prepended.
func SaveTranscription(doc *Document, path string) error {
	return os.WriteFile(path, []byte(transcriptionDisclaimer+doc.Text), 0644)
}
