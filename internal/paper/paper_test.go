package paper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nutshell-tools/nutshell/internal/llm"
)

func writePDF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test content"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSummarizeRoundTrip(t *testing.T) {
	pdfPath := writePDF(t, t.TempDir())
	mock := llm.NewMockLLM("# Summary\n\nKey findings.")
	mock.Usage = llm.Usage{InputTokens: 12000, OutputTokens: 900}

	doc, err := Summarize(context.Background(), mock, pdfPath, Config{Model: llm.ModelSonnet})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if doc.Text != "# Summary\n\nKey findings." {
		t.Fatalf("unexpected text: %q", doc.Text)
	}
	if doc.Usage.InputTokens != 12000 || doc.Usage.OutputTokens != 900 {
		t.Fatalf("usage not propagated: %+v", doc.Usage)
	}
	if mock.LastRequest.MaxTokens != SummarizeMaxTokens {
		t.Fatalf("summarize should use the %d token budget, got %d", SummarizeMaxTokens, mock.LastRequest.MaxTokens)
	}
	if len(mock.LastRequest.PDF) == 0 {
		t.Fatal("PDF bytes were not sent to the model")
	}
	if !strings.Contains(mock.LastRequest.Prompt, "reference document") {
		t.Fatal("default summarize prompt not loaded")
	}
}

func TestTranscribeUsesLargerBudgetAndPrompt(t *testing.T) {
	pdfPath := writePDF(t, t.TempDir())
	mock := llm.NewMockLLM("# Title\n\nFull text.")

	_, err := Transcribe(context.Background(), mock, pdfPath, Config{Model: llm.ModelSonnet})
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if mock.LastRequest.MaxTokens != TranscribeMaxTokens {
		t.Fatalf("transcribe should use the %d token budget, got %d", TranscribeMaxTokens, mock.LastRequest.MaxTokens)
	}
	if !strings.Contains(mock.LastRequest.Prompt, "transcription") {
		t.Fatal("default transcribe prompt not loaded")
	}
}

func TestRunMissingPDF(t *testing.T) {
	mock := llm.NewMockLLM("unused")
	_, err := Summarize(context.Background(), mock, "/nonexistent/paper.pdf", Config{Model: llm.ModelSonnet})
	if err == nil {
		t.Fatal("expected error for missing PDF")
	}
	if mock.Calls != 0 {
		t.Fatal("model must not be called when the PDF cannot be read")
	}
}

func TestRunPropagatesLLMError(t *testing.T) {
	pdfPath := writePDF(t, t.TempDir())
	wantErr := errors.New("rate limited")
	mock := llm.NewMockLLMWithError(wantErr)

	_, err := Summarize(context.Background(), mock, pdfPath, Config{Model: llm.ModelSonnet})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped LLM error, got %v", err)
	}
}

func TestSaveSummary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out_summary.md")
	doc := &Document{Text: "# Summary"}

	if err := SaveSummary(doc, out); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Summary" {
		t.Fatalf("got %q", data)
	}
}

func TestSaveTranscriptionAddsDisclaimer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out_transcription.md")
	doc := &Document{Text: "# Title\n\nBody."}

	if err := SaveTranscription(doc, out); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "<!-- This is an AI-generated transcript") {
		t.Fatal("missing disclaimer header")
	}
	if !strings.HasSuffix(text, "# Title\n\nBody.") {
		t.Fatal("transcription body missing or mangled")
	}
}
