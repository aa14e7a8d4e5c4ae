package cmd

import (
	"github.com/nutshell-tools/nutshell/internal/prompt"
	"github.com/nutshell-tools/nutshell/internal/resolver"
	"github.com/spf13/cobra"
)

var summarizeOpts runOptions

var summarizeCmd = &cobra.Command{
	Use:     "summarize [pdf path or URL]",
	Aliases: []string{"summarise"},
	Short:   "Summarize a research paper",
	Long: `Summarize a research paper into a markdown reference document.

The paper can be a local PDF or a URL; remote papers are cached under
the user cache directory and reused on later runs.

Examples:
  nutshell summarize paper.pdf
  nutshell summarize https://arxiv.org/pdf/2402.02896
  nutshell summarize paper.pdf -m haiku -o notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVarP(&summarizeOpts.output, "output", "o", "", "Output path (default: <stem>_summary.md)")
	summarizeCmd.Flags().StringVarP(&summarizeOpts.model, "model", "m", "sonnet", "Model to use: sonnet, haiku, opus, or a full model id")
	summarizeCmd.Flags().StringVarP(&summarizeOpts.promptName, "prompt", "p", prompt.DefaultSummarize, "Prompt template name or file path")
	summarizeCmd.Flags().BoolVarP(&summarizeOpts.yes, "yes", "y", false, "Skip the expensive-model confirmation")
	summarizeCmd.Flags().BoolVar(&summarizeOpts.strictModel, "strict-model", false, "Reject model tokens that are neither aliases nor recognized ids")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	return runOperation(resolver.OpSummarize, args[0], summarizeOpts)
}
