// Package prompt loads the instruction templates sent to the model.
// Default templates ship embedded in the binary; a name that points at
// an existing file on disk overrides them.
package prompt

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed templates/*.txt
var templates embed.FS

// Default template names per operation.
const (
	DefaultSummarize  = "summarize_v2"
	DefaultTranscribe = "transcribe_v1"
)

// Load returns the prompt text for name. A name that is a readable
// file path wins; otherwise it is looked up among the embedded
// templates (with or without the .txt extension).
func Load(name string) (string, error) {
	if data, err := os.ReadFile(name); err == nil {
		return string(data), nil
	}

	base := strings.TrimSuffix(name, ".txt")
	data, err := templates.ReadFile("templates/" + base + ".txt")
	if err != nil {
		return "", fmt.Errorf("prompt %q not found (available: %s)", name, strings.Join(Available(), ", "))
	}
	return string(data), nil
}

// Available lists the embedded template names.
func Available() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}
