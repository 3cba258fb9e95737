// Package document loads bill documents (local paths or remote URLs),
// rasterizes PDFs into page images, and enhances pages for OCR. The
// line-item extractor never touches images directly; it consumes boxes
// produced by the OCR engines from these pages.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Common document loading errors
var (
	// ErrNotFound is returned when a local document path cannot be
	// resolved against the working directory or its data/ subdirectory.
	ErrNotFound = errors.New("document not found")

	// ErrDownloadFailed is returned when a remote document cannot be
	// fetched.
	ErrDownloadFailed = errors.New("document download failed")

	// ErrInvalidDocument is returned when the payload is neither a
	// readable PDF nor a decodable image.
	ErrInvalidDocument = errors.New("document is not a readable PDF or image")

	// ErrRasterizeFailed is returned when PDF pages cannot be converted
	// to images (usually a missing poppler install).
	ErrRasterizeFailed = errors.New("failed to rasterize PDF pages")
)

const downloadTimeout = 30 * time.Second

// rasterDPI is the resolution PDF pages are rendered at. The row and
// column pixel tolerances in the extractor assume roughly this scale.
const rasterDPI = 200

// Loader fetches documents and converts them into page images.
type Loader struct {
	// PopplerPath optionally points at the directory holding the
	// poppler binaries; when empty, pdftoppm is resolved from PATH.
	PopplerPath string

	httpClient *http.Client
}

// NewLoader creates a Loader. popplerPath may be empty.
func NewLoader(popplerPath string) *Loader {
	return &Loader{
		PopplerPath: popplerPath,
		httpClient:  &http.Client{Timeout: downloadTimeout},
	}
}

// LoadPages loads the document referenced by a local path or http(s)
// URL and returns its pages as images, in order. Single-image documents
// yield one page.
func (l *Loader) LoadPages(ctx context.Context, ref string) ([]image.Image, error) {
	payload, contentType, suffixHint, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	isPDF := strings.HasSuffix(suffixHint, ".pdf") ||
		strings.Contains(contentType, "application/pdf") ||
		bytes.HasPrefix(payload, []byte("%PDF"))

	if isPDF {
		return l.rasterizePDF(ctx, payload)
	}

	img, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return []image.Image{img}, nil
}

func (l *Loader) read(ctx context.Context, ref string) (payload []byte, contentType, suffixHint string, err error) {
	parsed, parseErr := url.Parse(ref)
	if parseErr == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return l.readRemote(ctx, ref)
	}
	return l.readLocal(ref)
}

func (l *Loader) readRemote(ctx context.Context, documentURL string) ([]byte, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, "", "", fmt.Errorf("%w: status %d for %s", ErrDownloadFailed, resp.StatusCode, documentURL)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	return payload, contentType, strings.ToLower(documentURL), nil
}

func (l *Loader) readLocal(documentPath string) ([]byte, string, string, error) {
	path := documentPath
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			// Fall back to the conventional data/ directory.
			candidate := filepath.Join("data", documentPath)
			if _, err := os.Stat(candidate); err != nil {
				return nil, "", "", fmt.Errorf("%w: %s (looked in . and data/)", ErrNotFound, documentPath)
			}
			path = candidate
		}
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return payload, "", strings.ToLower(filepath.Ext(path)), nil
}

// rasterizePDF validates the PDF and renders each page to PNG with
// poppler's pdftoppm, honoring PopplerPath when set.
func (l *Loader) rasterizePDF(ctx context.Context, payload []byte) ([]image.Image, error) {
	if _, err := api.PageCount(bytes.NewReader(payload), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	tmpDir, err := os.MkdirTemp("", "billscan-raster-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterizeFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "document.pdf")
	if err := os.WriteFile(pdfPath, payload, 0o600); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterizeFailed, err)
	}

	binary := "pdftoppm"
	if l.PopplerPath != "" {
		binary = filepath.Join(l.PopplerPath, "pdftoppm")
	}

	outPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.CommandContext(ctx, binary, "-png", "-r", fmt.Sprint(rasterDPI), pdfPath, outPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrRasterizeFailed, err, strings.TrimSpace(string(out)))
	}

	matches, err := filepath.Glob(outPrefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("%w: pdftoppm produced no pages", ErrRasterizeFailed)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(matches)

	pages := make([]image.Image, 0, len(matches))
	for _, path := range matches {
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRasterizeFailed, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
