package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nutshell-tools/nutshell/internal/cache"
)

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrDownloadFailed  = errors.New("download failed")
	ErrNotPDF          = errors.New("content is not a PDF")
	ErrUnderivablePath = errors.New("cannot derive output path")
)

// Downloader fetches a remote resource into dest. Implementations
// report a failed transfer through the returned error and must not
// leave dest behind on failure.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// Resolver resolves references to local PDF paths, consulting and
// populating the cache store for remote ones.
type Resolver struct {
	store      *cache.Store
	downloader Downloader
}

// New creates a Resolver backed by the given store and downloader.
func New(store *cache.Store, downloader Downloader) *Resolver {
	return &Resolver{store: store, downloader: downloader}
}

// Resolve returns a local path for ref.
//
// Local references are validated to exist and returned unchanged.
// Remote references hit the cache first; only on a miss (no entry, or
// the cached file was deleted or fails the PDF checks) is the
// downloader invoked, after which the mapping is registered so the
// next resolution of the same URL is network-free.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (string, error) {
	switch ref.Kind {
	case KindLocal:
		if _, err := os.Stat(ref.Path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, ref.Path)
		}
		return ref.Path, nil

	case KindRemote:
		key := CacheKey(ref.URL)
		if path, ok, err := r.store.Get(key); err != nil {
			return "", fmt.Errorf("cache lookup: %w", err)
		} else if ok {
			return path, nil
		}

		dest := filepath.Join(r.store.PDFDir(), cachedFilename(ref.URL, key))
		if err := r.downloader.Download(ctx, ref.URL, dest); err != nil {
			return "", err
		}
		if !cache.ValidPDF(dest) {
			os.Remove(dest)
			return "", fmt.Errorf("%w: %s", ErrNotPDF, ref.URL)
		}
		if err := r.store.Put(key, NormalizeURL(ref.URL), dest); err != nil {
			return "", fmt.Errorf("cache register: %w", err)
		}
		return dest, nil
	}
	return "", fmt.Errorf("unknown reference kind %d", ref.Kind)
}

// cachedFilename picks the on-disk name for a downloaded URL: the
// arXiv id when one is present, otherwise a prefix of the cache key.
// Both are deterministic functions of the URL, so re-runs land on the
// same file.
func cachedFilename(url, key string) string {
	if id := ArxivID(url); id != "" {
		return id + ".pdf"
	}
	return key[:16] + ".pdf"
}

// HTTPDownloader fetches resources over HTTP using the default client.
// The body is written to a temp file in the destination directory and
// renamed into place, so an interrupted transfer never leaves a
// half-written file at dest.
type HTTPDownloader struct {
	Client *http.Client
}

func (d *HTTPDownloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// Download implements Downloader.
func (d *HTTPDownloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	req.Header.Set("User-Agent", "nutshell/1.0")

	resp, err := d.client().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: http %s for %s", ErrDownloadFailed, resp.Status, url)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !pdfContentType(ct) {
		return fmt.Errorf("%w: content-type %q from %s", ErrNotPDF, ct, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".nutshell-dl-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, resp.Body)
	tmp.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return nil
}

func pdfContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	// Some hosts serve PDFs as octet-stream; the magic-byte check after
	// download is the authoritative one.
	return ct == "application/pdf" || ct == "application/octet-stream"
}
