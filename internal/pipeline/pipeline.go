// Package pipeline orchestrates document extraction: load and enhance
// page images, fan out to the configured OCR engines, and run the
// line-item extractor over the merged box bag of each page.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"billscan/internal/document"
	"billscan/internal/lineitem"
	"billscan/internal/logger"
	"billscan/internal/ocr"
	"billscan/pkg/models"
)

// pageType is attached to every extracted page. Page classification
// beyond bill detail pages is out of scope here.
const pageType = "Bill Detail"

// Options tune a Processor beyond its engine set.
type Options struct {
	// PopplerPath optionally locates the poppler binaries for PDF
	// rasterization.
	PopplerPath string

	// DumpOCR writes the raw boxes of every page/engine pair as JSON
	// into DumpDir, for debugging extraction issues against real scans.
	DumpOCR bool
	DumpDir string
}

// Processor runs the page-level extraction pipeline over documents.
type Processor struct {
	engines []ocr.Engine
	loader  *document.Loader
	opts    Options
	log     zerolog.Logger
}

// New creates a Processor over the given OCR engines. Engines run in
// order per page and their boxes are concatenated; an engine that
// cannot run is skipped, never fatal.
func New(engines []ocr.Engine, opts Options) *Processor {
	return &Processor{
		engines: engines,
		loader:  document.NewLoader(opts.PopplerPath),
		opts:    opts,
		log:     logger.WithComponent("pipeline"),
	}
}

// ProcessDocument loads the referenced document and extracts line items
// from every page.
func (p *Processor) ProcessDocument(ctx context.Context, ref string) (*models.ExtractionData, error) {
	pages, err := p.loader.LoadPages(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %q: %w", ref, err)
	}

	p.log.Info().Str("document", ref).Int("pages", len(pages)).Msg("Document loaded")
	return p.ProcessPages(ctx, pages), nil
}

// ProcessPages extracts line items from already-rasterized page images.
// Each page is processed independently; a page whose every engine fails
// yields zero items, never an error.
func (p *Processor) ProcessPages(ctx context.Context, pages []image.Image) *models.ExtractionData {
	result := &models.ExtractionData{
		PagewiseLineItems: make([]models.PageLineItems, 0, len(pages)),
	}

	var reconciled float64
	for i, page := range pages {
		pageNo := i + 1
		items := p.processPage(ctx, pageNo, page)

		result.PagewiseLineItems = append(result.PagewiseLineItems, models.PageLineItems{
			PageNo:    fmt.Sprint(pageNo),
			PageType:  pageType,
			BillItems: items,
		})
		result.TotalItemCount += len(items)
		for _, item := range items {
			reconciled += item.ItemAmount
		}
	}
	result.ReconciledAmount = math.Round(reconciled*100) / 100

	return result
}

func (p *Processor) processPage(ctx context.Context, pageNo int, page image.Image) []models.LineItem {
	enhanced := document.EnhanceForOCR(page)

	var allBoxes []models.Box
	for _, engine := range p.engines {
		boxes, err := engine.Recognize(ctx, enhanced)
		if err != nil {
			if errors.Is(err, ocr.ErrNotImplemented) || errors.Is(err, ocr.ErrUnavailable) {
				p.log.Warn().
					Str("engine", engine.Name()).
					Int("page", pageNo).
					Err(err).
					Msg("OCR engine skipped")
			} else {
				p.log.Error().
					Str("engine", engine.Name()).
					Int("page", pageNo).
					Err(err).
					Msg("OCR engine failed; continuing without its boxes")
			}
			continue
		}

		p.log.Debug().
			Str("engine", engine.Name()).
			Int("page", pageNo).
			Int("boxes", len(boxes)).
			Msg("OCR boxes recognized")

		if p.opts.DumpOCR && len(boxes) > 0 {
			p.dumpBoxes(boxes, engine.Name(), pageNo)
		}
		allBoxes = append(allBoxes, boxes...)
	}

	items := lineitem.Extract(allBoxes)
	p.log.Info().
		Int("page", pageNo).
		Int("boxes", len(allBoxes)).
		Int("items", len(items)).
		Msg("Page extracted")
	return items
}

// dumpBoxes writes one page/engine box list as pretty JSON. Dump
// failures are logged and ignored; debugging output must not affect
// extraction.
func (p *Processor) dumpBoxes(boxes []models.Box, engineName string, pageNo int) {
	dir := p.opts.DumpDir
	if dir == "" {
		dir = os.Getenv("OCR_DUMP_DIR")
	}
	if dir == "" {
		dir = "debug_ocr"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		p.log.Warn().Err(err).Str("dir", dir).Msg("Failed to create OCR dump directory")
		return
	}

	data, err := json.MarshalIndent(boxes, "", "  ")
	if err != nil {
		p.log.Warn().Err(err).Msg("Failed to marshal OCR boxes")
		return
	}

	target := filepath.Join(dir, fmt.Sprintf("page_%02d_%s.json", pageNo, engineName))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		p.log.Warn().Err(err).Str("file", target).Msg("Failed to write OCR dump")
	}
}
