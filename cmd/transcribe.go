package cmd

import (
	"github.com/nutshell-tools/nutshell/internal/prompt"
	"github.com/nutshell-tools/nutshell/internal/resolver"
	"github.com/spf13/cobra"
)

var transcribeOpts runOptions

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [pdf path or URL]",
	Short: "Create a full transcription of a research paper",
	Long: `Transcribe a research paper into markdown, preserving the original
wording. Figures and images are replaced with bracketed descriptions
and the output carries an AI-transcript disclaimer.

Examples:
  nutshell transcribe paper.pdf
  nutshell transcribe https://arxiv.org/pdf/2402.02896 -m haiku`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	transcribeCmd.Flags().StringVarP(&transcribeOpts.output, "output", "o", "", "Output path (default: <stem>_transcription.md)")
	transcribeCmd.Flags().StringVarP(&transcribeOpts.model, "model", "m", "sonnet", "Model to use: sonnet, haiku, opus, or a full model id")
	transcribeCmd.Flags().StringVarP(&transcribeOpts.promptName, "prompt", "p", prompt.DefaultTranscribe, "Prompt template name or file path")
	transcribeCmd.Flags().BoolVarP(&transcribeOpts.yes, "yes", "y", false, "Skip the expensive-model confirmation")
	transcribeCmd.Flags().BoolVar(&transcribeOpts.strictModel, "strict-model", false, "Reject model tokens that are neither aliases nor recognized ids")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	return runOperation(resolver.OpTranscribe, args[0], transcribeOpts)
}
