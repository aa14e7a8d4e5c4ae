package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeFakePDF writes a file that passes the PDF validation checks.
func writeFakePDF(t *testing.T, path string) {
	t.Helper()
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 2048)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write fake pdf: %v", err)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := Open(root)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(store.PDFDir(), "2402.02896.pdf")
	writeFakePDF(t, path)

	if err := store.Put("key1", "https://arxiv.org/pdf/2402.02896", path); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get("key1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestGetAfterExternalDelete(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(store.PDFDir(), "paper.pdf")
	writeFakePDF(t, path)
	if err := store.Put("k", "https://example.com/paper.pdf", path); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, ok, err := store.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("deleted file must be reported as a miss")
	}
}

func TestGetRejectsCorruptFile(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(store.PDFDir(), "paper.pdf")
	writeFakePDF(t, path)
	if err := store.Put("k", "https://example.com/paper.pdf", path); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Simulate an interrupted download left behind: too small, no magic.
	if err := os.WriteFile(path, []byte("<html>not found</html>"), 0644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	_, ok, err := store.Get("k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("corrupt file must be reported as a miss")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	root := t.TempDir()

	store, err := Open(root)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	path := filepath.Join(store.PDFDir(), "paper.pdf")
	writeFakePDF(t, path)
	if err := store.Put("k", "https://example.com/paper.pdf", path); err != nil {
		t.Fatalf("put: %v", err)
	}
	store.Close()

	reopened, err := Open(root)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if !ok || got != path {
		t.Fatalf("expected persisted entry %s, got %q (hit=%v)", path, got, ok)
	}
}

func TestPutOverwritesEntry(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	first := filepath.Join(store.PDFDir(), "first.pdf")
	second := filepath.Join(store.PDFDir(), "second.pdf")
	writeFakePDF(t, first)
	writeFakePDF(t, second)

	if err := store.Put("k", "https://example.com/p.pdf", first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.Put("k", "https://example.com/p.pdf", second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, ok, _ := store.Get("k")
	if !ok || got != second {
		t.Fatalf("last writer should win, got %q (hit=%v)", got, ok)
	}

	stats, err := store.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if stats.Entries != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", stats.Entries)
	}
}

func TestClearRemovesFilesAndIndex(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	path := filepath.Join(store.PDFDir(), "paper.pdf")
	writeFakePDF(t, path)
	if err := store.Put("k", "https://example.com/paper.pdf", path); err != nil {
		t.Fatalf("put: %v", err)
	}

	removed, err := store.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed file, got %d", removed)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cached file should be gone after clear")
	}

	stats, err := store.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if stats.Entries != 0 {
		t.Fatalf("expected empty index, got %d entries", stats.Entries)
	}
}

func TestValidPDF(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.pdf")
	writeFakePDF(t, good)
	if !ValidPDF(good) {
		t.Fatal("well-formed file should validate")
	}

	small := filepath.Join(dir, "small.pdf")
	if err := os.WriteFile(small, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	if ValidPDF(small) {
		t.Fatal("undersized file should not validate")
	}

	if ValidPDF(filepath.Join(dir, "absent.pdf")) {
		t.Fatal("missing file should not validate")
	}
}
