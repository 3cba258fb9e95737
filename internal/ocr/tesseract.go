package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"billscan/pkg/models"
)

// TesseractEngine recognizes word boxes with a local Tesseract install
// via gosseract. It is the default engine: free, offline, and the one
// whose word-level output the extractor was tuned against.
type TesseractEngine struct {
	lang string
}

// NewTesseractEngine creates a Tesseract engine for the given language
// ("eng" when empty).
func NewTesseractEngine(lang string) *TesseractEngine {
	if lang == "" {
		lang = "eng"
	}
	return &TesseractEngine{lang: lang}
}

// Name implements Engine.
func (t *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs word-level recognition on the page image. A fresh
// gosseract client is created per call; the client is not safe for
// concurrent use and pages may be processed in parallel.
func (t *TesseractEngine) Recognize(ctx context.Context, img image.Image) ([]models.Box, error) {
	const op = "Recognize"

	if err := ctx.Err(); err != nil {
		return nil, WrapEngineError(t.Name(), op, err, "context done before recognition")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapEngineError(t.Name(), op, err, "failed to encode page image")
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.lang); err != nil {
		return nil, WrapEngineError(t.Name(), op, ErrUnavailable, err.Error())
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, WrapEngineError(t.Name(), op, ErrRecognitionFailed, err.Error())
	}

	words, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, WrapEngineError(t.Name(), op, ErrRecognitionFailed, err.Error())
	}

	boxes := make([]models.Box, 0, len(words))
	for _, w := range words {
		text := w.Word
		if text == "" {
			continue
		}
		boxes = append(boxes, models.Box{
			Text:       text,
			Left:       w.Box.Min.X,
			Top:        w.Box.Min.Y,
			Width:      w.Box.Dx(),
			Height:     w.Box.Dy(),
			Confidence: w.Confidence,
		})
	}
	return boxes, nil
}
