package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"billscan/pkg/models"
)

// GoogleVisionEngine recognizes word boxes with the Google Cloud Vision
// document text detection API.
type GoogleVisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionEngine creates a Vision engine with credentials from
// the environment: GOOGLE_CREDENTIALS (inline JSON),
// GOOGLE_APPLICATION_CREDENTIALS (key file path), or application
// default credentials, in that order.
func NewGoogleVisionEngine(ctx context.Context) (*GoogleVisionEngine, error) {
	const op = "NewGoogleVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapEngineError("google-vision", op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapEngineError("google-vision", op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapEngineError("google-vision", op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionEngine{client: client}, nil
}

// NewGoogleVisionEngineWithClient creates a Vision engine with an
// explicit client (for testing).
func NewGoogleVisionEngineWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionEngine {
	return &GoogleVisionEngine{client: client}
}

// Name implements Engine.
func (g *GoogleVisionEngine) Name() string { return "google-vision" }

// Recognize sends the page image through DOCUMENT_TEXT_DETECTION and
// flattens the block/paragraph/word hierarchy into word boxes. Word
// rectangles come from the bounding vertices; rotation is ignored since
// pages are rasterized upright.
func (g *GoogleVisionEngine) Recognize(ctx context.Context, img image.Image) ([]models.Box, error) {
	const op = "Recognize"

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapEngineError(g.Name(), op, err, "failed to encode page image")
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: buf.Bytes()},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapEngineError(g.Name(), op, ErrRecognitionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapEngineError(g.Name(), op, ErrRecognitionFailed, "no response from Vision API")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, WrapEngineError(g.Name(), op, ErrRecognitionFailed, fmt.Sprintf("Vision API error: %s", annotated.Error.Message))
	}

	boxes := make([]models.Box, 0)
	if annotated.FullTextAnnotation == nil {
		return boxes, nil
	}

	for _, page := range annotated.FullTextAnnotation.Pages {
		for _, block := range page.Blocks {
			for _, paragraph := range block.Paragraphs {
				for _, word := range paragraph.Words {
					text := wordText(word)
					if text == "" {
						continue
					}
					left, top, width, height := vertexBounds(word.BoundingBox)
					boxes = append(boxes, models.Box{
						Text:       text,
						Left:       left,
						Top:        top,
						Width:      width,
						Height:     height,
						Confidence: float64(word.Confidence),
					})
				}
			}
		}
	}
	return boxes, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionEngine) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func wordText(word *visionpb.Word) string {
	var b bytes.Buffer
	for _, symbol := range word.Symbols {
		b.WriteString(symbol.Text)
	}
	return b.String()
}

func vertexBounds(poly *visionpb.BoundingPoly) (left, top, width, height int) {
	if poly == nil || len(poly.Vertices) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY := int(poly.Vertices[0].X), int(poly.Vertices[0].Y)
	maxX, maxY := minX, minY
	for _, v := range poly.Vertices[1:] {
		x, y := int(v.X), int(v.Y)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX - minX, maxY - minY
}
