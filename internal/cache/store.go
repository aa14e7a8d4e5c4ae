// Package cache provides the on-disk store for downloaded papers.
// Each remote URL maps to one PDF file under the cache root; a small
// sqlite index records the mapping together with integrity metadata so
// repeated runs can reuse downloads without touching the network.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// minPDFSize is the smallest file the store will serve as a cache hit.
// Anything below this is assumed to be a truncated download.
const minPDFSize = 1024

var pdfMagic = []byte("%PDF-")

// Store manages the cache directory and its index database.
type Store struct {
	root string
	db   *sql.DB
}

// Entry describes one cached download.
type Entry struct {
	Key       string
	URL       string
	Path      string
	Size      int64
	SHA256    string
	FetchedAt time.Time
}

// Open opens or creates a cache at the given root directory.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "pdf"), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(root, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	s := &Store{root: root, db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the index database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// PDFDir returns the directory cached PDFs are written into.
func (s *Store) PDFDir() string {
	return filepath.Join(s.root, "pdf")
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key        TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			path       TEXT NOT NULL,
			size       INTEGER NOT NULL,
			sha256     TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)
	`)
	return err
}

// Get returns the cached path for key if the entry exists and the file
// on disk still looks like a usable PDF. A missing, truncated, or
// non-PDF file is reported as a miss; the stale row is left in place
// and overwritten by the next Put (last-writer-wins).
func (s *Store) Get(key string) (string, bool, error) {
	var path string
	err := s.db.QueryRow(`SELECT path FROM entries WHERE key = ?`, key).Scan(&path)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query entry: %w", err)
	}

	if !ValidPDF(path) {
		return "", false, nil
	}
	return path, true, nil
}

// Put records a mapping from key to a downloaded file, capturing its
// size and content hash. An existing row for the key is replaced.
func (s *Store) Put(key, url, path string) error {
	size, sum, err := fileDigest(path)
	if err != nil {
		return fmt.Errorf("digest %s: %w", path, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (key, url, path, size, sha256, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			url = excluded.url,
			path = excluded.path,
			size = excluded.size,
			sha256 = excluded.sha256,
			fetched_at = excluded.fetched_at
	`, key, url, path, size, sum, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// List returns all index entries ordered by fetch time, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT key, url, path, size, sha256, fetched_at
		FROM entries ORDER BY fetched_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetched string
		if err := rows.Scan(&e.Key, &e.URL, &e.Path, &e.Size, &e.SHA256, &fetched); err != nil {
			return nil, err
		}
		e.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries   int64
	TotalSize int64
}

// Stat returns cache statistics from the index.
func (s *Store) Stat() (*Stats, error) {
	var st Stats
	err := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM entries`).
		Scan(&st.Entries, &st.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("stat cache: %w", err)
	}
	return &st, nil
}

// Clear removes every cached file referenced by the index and empties
// the index itself. Files already deleted externally are skipped.
func (s *Store) Clear() (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if err := os.Remove(e.Path); err == nil {
			removed++
		} else if !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove %s: %w", e.Path, err)
		}
	}

	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return removed, fmt.Errorf("clear index: %w", err)
	}
	return removed, nil
}

// ValidPDF reports whether the file at path exists and passes the
// reuse checks: minimum size and the %PDF- magic prefix. Partial
// downloads from interrupted runs fail both.
func ValidPDF(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() < minPDFSize {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return string(head) == string(pdfMagic)
}

func fileDigest(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return size, hex.EncodeToString(h.Sum(nil)), nil
}
