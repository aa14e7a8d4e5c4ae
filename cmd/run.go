package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nutshell-tools/nutshell/internal/cache"
	"github.com/nutshell-tools/nutshell/internal/llm"
	"github.com/nutshell-tools/nutshell/internal/paper"
	"github.com/nutshell-tools/nutshell/internal/resolver"
)

// Styling shared by the subcommands.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
)

// runOptions are the flags shared by summarize and transcribe.
type runOptions struct {
	output      string
	model       string
	promptName  string
	yes         bool
	strictModel bool
}

// runOperation is the pipeline behind both subcommands: resolve the
// model token, gate expensive choices on a confirmation, resolve the
// reference to a local PDF, derive the output path, call the model,
// and write the markdown.
func runOperation(op resolver.Operation, reference string, opts runOptions) error {
	ctx := context.Background()

	spec, needsConfirm, err := resolveModelToken(opts.model, opts.strictModel)
	if err != nil {
		return err
	}

	if needsConfirm && !opts.yes {
		if !confirmExpensiveModel(spec.ID) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ref, err := resolver.ParseReference(reference)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗ Error:"), err)
	}

	root, err := cacheDir()
	if err != nil {
		return err
	}
	store, err := cache.Open(root)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	if ref.Kind == resolver.KindRemote {
		fmt.Println(mutedStyle.Render("→ Resolving " + ref.URL))
	}
	res := resolver.New(store, &resolver.HTTPDownloader{})
	pdfPath, err := res.Resolve(ctx, ref)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗ Error:"), err)
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath, err = resolver.DeriveOutputPath(ref, op)
		if err != nil {
			return fmt.Errorf("%s %w (use -o to set an output path)", errorStyle.Render("✗ Error:"), err)
		}
	}

	fmt.Printf("Processing: %s\n", pdfPath)
	fmt.Printf("Using model: %s\n", spec.ID)

	client, err := llm.New(spec.ID, llm.Config{})
	if err != nil {
		return err
	}

	cfg := paper.Config{Model: spec.ID, PromptName: opts.promptName}

	var doc *paper.Document
	var verb string
	switch op {
	case resolver.OpTranscribe:
		verb = "Transcription"
		doc, err = paper.Transcribe(ctx, client, pdfPath, cfg)
		if err == nil {
			err = paper.SaveTranscription(doc, outputPath)
		}
	default:
		verb = "Summary"
		doc, err = paper.Summarize(ctx, client, pdfPath, cfg)
		if err == nil {
			err = paper.SaveSummary(doc, outputPath)
		}
	}
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("✗ "+verb+" failed:"), err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s saved to: %s", verb, outputPath)))
	printUsage(doc)
	return nil
}

func resolveModelToken(token string, strict bool) (llm.ModelSpec, bool, error) {
	if strict {
		return llm.ResolveModelStrict(token)
	}
	spec, confirm := llm.ResolveModel(token)
	return spec, confirm, nil
}

// confirmExpensiveModel prints the cost warning and reads a y/N answer
// from the terminal.
func confirmExpensiveModel(modelID string) bool {
	fmt.Println()
	fmt.Println(warnStyle.Render("⚠ Warning: " + modelID + " is very expensive and may not provide"))
	fmt.Println(warnStyle.Render("significant benefits for summarization/transcription tasks."))
	fmt.Println(warnStyle.Render("Consider using 'sonnet' or 'haiku' instead."))
	fmt.Println()
	fmt.Print("Continue? (y/N): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func printUsage(doc *paper.Document) {
	fmt.Println()
	fmt.Printf("Tokens: %d in, %d out\n", doc.Usage.InputTokens, doc.Usage.OutputTokens)
	if cost, ok := llm.EstimateCost(doc.Model, doc.Usage); ok {
		fmt.Printf("Cost: $%.4f\n", cost)
	}
}
