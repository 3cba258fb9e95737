// Package ocr defines the OCR collaborator contract and its engine
// implementations.
//
// An Engine receives a single rasterized page image and returns word
// boxes — text fragments with pixel bounding rectangles — in page
// coordinates. Box order is irrelevant; the extractor re-derives layout
// from geometry. An engine may legitimately return an empty list for a
// blank page, and an engine that cannot run reports ErrNotImplemented
// or ErrUnavailable instead of boxes so the pipeline can continue with
// the remaining engines.
//
// Engines available:
//   - Tesseract (otiai10/gosseract), the default local engine
//   - Google Cloud Vision document text detection
//   - Google Document AI OCR processor
package ocr

import (
	"context"
	"image"

	"billscan/pkg/models"
)

// Engine is the OCR collaborator contract. Implementations must treat
// the image as read-only and may be called for multiple pages over the
// engine's lifetime.
type Engine interface {
	// Name identifies the engine in logs and OCR dump files.
	Name() string

	// Recognize returns word-level boxes for one page image. A page with
	// no recognizable text yields an empty slice and no error.
	Recognize(ctx context.Context, img image.Image) ([]models.Box, error)
}
