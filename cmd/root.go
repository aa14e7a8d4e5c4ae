package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nutshell",
	Short: "Nutshell - Research paper assistant",
	Long: `Nutshell sends research-paper PDFs to a hosted language model and saves
the returned summary or transcription as markdown.

Papers can be given as local file paths or as URLs; remote papers are
downloaded once and reused from a local cache on later runs.

Credentials are read from ANTHROPIC_API_KEY (or OPENAI_API_KEY for
non-Claude models), a .env file in the working directory, or the
per-user config file at <user-config-dir>/nutshell/config.env. The
config file takes precedence over the environment.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Per-user config wins over the environment when present
	if dir, err := os.UserConfigDir(); err == nil {
		_ = godotenv.Overload(filepath.Join(dir, "nutshell", "config.env"))
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cacheDir returns the cache root: NUTSHELL_CACHE when set, otherwise
// the conventional per-user cache location.
func cacheDir() (string, error) {
	if dir := os.Getenv("NUTSHELL_CACHE"); dir != "" {
		return dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return filepath.Join(dir, "nutshell"), nil
}
