package resolver

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDeriveLocalSummary(t *testing.T) {
	ref := Reference{Kind: KindLocal, Path: filepath.Join("/a", "b", "paper.pdf")}
	got, err := DeriveOutputPath(ref, OpSummarize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/a", "b", "paper_summary.md")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeriveLocalTranscription(t *testing.T) {
	ref := Reference{Kind: KindLocal, Path: filepath.Join("/a", "b", "paper.pdf")}
	got, err := DeriveOutputPath(ref, OpTranscribe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/a", "b", "paper_transcription.md")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDeriveArxivURL(t *testing.T) {
	ref := Reference{Kind: KindRemote, URL: "https://arxiv.org/pdf/2402.02896"}
	got, err := DeriveOutputPath(ref, OpSummarize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2402.02896_summary.md" {
		t.Fatalf("got %q, want %q", got, "2402.02896_summary.md")
	}
}

func TestDeriveGenericURL(t *testing.T) {
	ref := Reference{Kind: KindRemote, URL: "https://example.com/papers/attention.pdf"}
	got, err := DeriveOutputPath(ref, OpTranscribe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "attention_transcription.md" {
		t.Fatalf("got %q, want %q", got, "attention_transcription.md")
	}
}

func TestDeriveURLWithoutPath(t *testing.T) {
	ref := Reference{Kind: KindRemote, URL: "https://example.com/"}
	_, err := DeriveOutputPath(ref, OpSummarize)
	if !errors.Is(err, ErrUnderivablePath) {
		t.Fatalf("expected ErrUnderivablePath, got %v", err)
	}
}
