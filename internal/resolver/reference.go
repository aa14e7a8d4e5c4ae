// Package resolver turns a user-supplied paper reference, either a
// filesystem path or an http(s) URL, into a local PDF ready for
// reading. Remote references are downloaded once and served from the
// cache afterwards. The package also derives default output filenames
// from the reference.
package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Kind distinguishes the two reference variants.
type Kind int

const (
	KindLocal Kind = iota
	KindRemote
)

// Reference is a classified paper reference. Exactly one
// interpretation applies: a local filesystem path or a remote URL.
// Classification happens once, at the boundary, in ParseReference.
type Reference struct {
	Kind Kind

	// Path is set for KindLocal references.
	Path string

	// URL is set for KindRemote references and is syntactically valid
	// with an http or https scheme.
	URL string
}

// ParseReference classifies raw as a remote URL when it carries an
// http(s) scheme and as a local path otherwise. A malformed string
// with an http(s) prefix is rejected rather than treated as a path.
func ParseReference(raw string) (Reference, error) {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return Reference{}, fmt.Errorf("invalid URL %q", raw)
		}
		return Reference{Kind: KindRemote, URL: raw}, nil
	}
	return Reference{Kind: KindLocal, Path: raw}, nil
}

// NormalizeURL canonicalizes a remote URL for use as a cache identity:
// scheme and host are lowercased and any fragment is dropped. Query
// strings are kept verbatim since no parameter is known to be
// content-irrelevant across arbitrary hosts.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return u.String()
}

// CacheKey derives the deterministic cache key for a remote URL.
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(NormalizeURL(rawURL)))
	return hex.EncodeToString(sum[:])
}

// arxivIDPattern matches modern arXiv identifiers (YYMM.NNNNN) with an
// optional version suffix, e.g. 2402.02896 or 2402.02896v2.
var arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})(v\d+)?`)

// ArxivID extracts the arXiv identifier from an arxiv.org URL.
// Returns the empty string when the URL is not an arXiv one or no
// identifier is present.
func ArxivID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if host != "arxiv.org" && !strings.HasSuffix(host, ".arxiv.org") {
		return ""
	}
	m := arxivIDPattern.FindString(u.Path)
	return m
}
