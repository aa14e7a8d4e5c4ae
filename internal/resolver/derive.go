package resolver

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Operation selects the kind of document being produced, which
// determines the default output suffix.
type Operation int

const (
	OpSummarize Operation = iota
	OpTranscribe
)

func (op Operation) suffix() string {
	if op == OpTranscribe {
		return "_transcription.md"
	}
	return "_summary.md"
}

// DeriveOutputPath produces the default markdown output path for a
// reference when the user did not supply one.
//
// Local references keep their directory: /a/b/paper.pdf becomes
// /a/b/paper_summary.md. Remote arXiv references use the arXiv id as
// the stem in the current directory; other URLs use the last path
// segment with its extension stripped. When no stem can be extracted
// the caller must require an explicit output path.
func DeriveOutputPath(ref Reference, op Operation) (string, error) {
	switch ref.Kind {
	case KindLocal:
		stem := strings.TrimSuffix(filepath.Base(ref.Path), filepath.Ext(ref.Path))
		if stem == "" || stem == "." || stem == string(filepath.Separator) {
			return "", fmt.Errorf("%w: %q has no filename", ErrUnderivablePath, ref.Path)
		}
		return filepath.Join(filepath.Dir(ref.Path), stem+op.suffix()), nil

	case KindRemote:
		stem := urlStem(ref.URL)
		if stem == "" {
			return "", fmt.Errorf("%w: no usable path segment in %q", ErrUnderivablePath, ref.URL)
		}
		return stem + op.suffix(), nil
	}
	return "", fmt.Errorf("%w: unclassified reference", ErrUnderivablePath)
}

func urlStem(rawURL string) string {
	if id := ArxivID(rawURL); id != "" {
		return id
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	seg := path.Base(strings.TrimSuffix(u.Path, "/"))
	if seg == "" || seg == "." || seg == "/" {
		return ""
	}
	return strings.TrimSuffix(seg, path.Ext(seg))
}
