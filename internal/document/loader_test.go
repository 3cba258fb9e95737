package document

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 40, 20))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

func TestLoadPagesLocalImage(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "bill.png")

	pages, err := NewLoader("").LoadPages(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if got := pages[0].Bounds(); got.Dx() != 40 || got.Dy() != 20 {
		t.Errorf("page bounds = %v, want 40x20", got)
	}
}

func TestLoadPagesMissingFile(t *testing.T) {
	_, err := NewLoader("").LoadPages(context.Background(), "no-such-bill.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadPagesUnreadablePayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bill.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader("").LoadPages(context.Background(), path)
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("error = %v, want ErrInvalidDocument", err)
	}
}

func TestLoadPagesCorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bill.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader("").LoadPages(context.Background(), path)
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("error = %v, want ErrInvalidDocument", err)
	}
}

func TestLoadPagesRemoteImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 20))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	pages, err := NewLoader("").LoadPages(context.Background(), srv.URL+"/bill.png")
	if err != nil {
		t.Fatalf("LoadPages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(pages))
	}
}

func TestLoadPagesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewLoader("").LoadPages(context.Background(), srv.URL+"/gone.png")
	if !errors.Is(err, ErrDownloadFailed) {
		t.Errorf("error = %v, want ErrDownloadFailed", err)
	}
}
