package cmd

import (
	"context"

	"github.com/rs/zerolog"

	"billscan/internal/config"
	"billscan/internal/ocr"
)

// buildEngines assembles the OCR engine set from configuration. Engines
// that cannot be constructed are logged and left out; the pipeline runs
// with whatever engines are available, down to none.
func buildEngines(ctx context.Context, cfg *config.Config, log zerolog.Logger) []ocr.Engine {
	var engines []ocr.Engine

	if cfg.TesseractEnabled {
		engines = append(engines, ocr.NewTesseractEngine(cfg.TesseractLang))
	}

	if cfg.GoogleVisionEnabled {
		if !cfg.HasGoogleCredentials() {
			log.Warn().Msg("Google Vision enabled but no credentials configured; engine disabled")
		} else if engine, err := ocr.NewGoogleVisionEngine(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to create Google Vision engine; continuing without it")
		} else {
			engines = append(engines, engine)
		}
	}

	if cfg.DocumentAIProcessorID != "" {
		engine, err := ocr.NewDocumentAIEngine(ctx, ocr.DocumentAIConfig{
			ProjectID:        cfg.GoogleCloudProject,
			Location:         cfg.GoogleCloudLocation,
			ProcessorID:      cfg.DocumentAIProcessorID,
			ProcessorVersion: cfg.DocumentAIVersion,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create Document AI engine; continuing without it")
		} else {
			engines = append(engines, engine)
		}
	}

	if len(engines) == 0 {
		log.Warn().Msg("No OCR engines configured; extraction will yield zero items")
	}

	return engines
}
