package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"billscan/pkg/models"
)

// DocumentAIConfig identifies the Document AI OCR processor to call.
type DocumentAIConfig struct {
	ProjectID        string
	Location         string
	ProcessorID      string
	ProcessorVersion string
}

// DocumentAIEngine recognizes word boxes with a Google Document AI OCR
// processor. It fills the premium-vendor engine slot: when no processor
// is configured the engine reports ErrNotImplemented and the pipeline
// carries on with the other engines' boxes.
type DocumentAIEngine struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIEngine creates a Document AI engine with credentials
// from the environment. The regional API endpoint is derived from the
// configured location.
func NewDocumentAIEngine(ctx context.Context, config DocumentAIConfig) (*DocumentAIEngine, error) {
	const op = "NewDocumentAIEngine"

	if config.Location == "" {
		config.Location = "us"
	}

	opts := []option.ClientOption{
		option.WithEndpoint(fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)),
	}
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, WrapEngineError("document-ai", op, err, "failed to create Document AI client")
	}

	return &DocumentAIEngine{client: client, config: config}, nil
}

// NewDocumentAIEngineWithClient creates a Document AI engine with an
// explicit client (for testing).
func NewDocumentAIEngineWithClient(client *documentai.DocumentProcessorClient, config DocumentAIConfig) *DocumentAIEngine {
	return &DocumentAIEngine{client: client, config: config}
}

// Name implements Engine.
func (d *DocumentAIEngine) Name() string { return "document-ai" }

// Recognize sends the page image through the configured OCR processor
// and converts page tokens into word boxes. Token text comes from the
// layout text anchor; token rectangles from the bounding poly vertices,
// falling back to normalized vertices scaled by the page dimension.
func (d *DocumentAIEngine) Recognize(ctx context.Context, img image.Image) ([]models.Box, error) {
	const op = "Recognize"

	if d.config.ProcessorID == "" || d.config.ProjectID == "" {
		return nil, WrapEngineError(d.Name(), op, ErrNotImplemented, "no Document AI processor configured")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, WrapEngineError(d.Name(), op, err, "failed to encode page image")
	}

	req := &documentaipb.ProcessRequest{
		Name: d.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  buf.Bytes(),
				MimeType: "image/png",
			},
		},
	}

	resp, err := d.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, WrapEngineError(d.Name(), op, ErrRecognitionFailed, fmt.Sprintf("Document AI call failed: %v", err))
	}

	doc := resp.GetDocument()
	if doc == nil {
		return nil, WrapEngineError(d.Name(), op, ErrRecognitionFailed, "empty document in response")
	}

	boxes := make([]models.Box, 0)
	for _, page := range doc.GetPages() {
		for _, token := range page.GetTokens() {
			layout := token.GetLayout()
			if layout == nil {
				continue
			}
			text := strings.TrimSpace(anchorText(doc.GetText(), layout.GetTextAnchor()))
			if text == "" {
				continue
			}
			left, top, width, height := polyBounds(layout.GetBoundingPoly(), page.GetDimension())
			boxes = append(boxes, models.Box{
				Text:       text,
				Left:       left,
				Top:        top,
				Width:      width,
				Height:     height,
				Confidence: float64(layout.GetConfidence()),
			})
		}
	}
	return boxes, nil
}

// Close closes the underlying Document AI client.
func (d *DocumentAIEngine) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

func (d *DocumentAIEngine) processorName() string {
	if d.config.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			d.config.ProjectID, d.config.Location, d.config.ProcessorID, d.config.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		d.config.ProjectID, d.config.Location, d.config.ProcessorID)
}

func anchorText(fullText string, anchor *documentaipb.Document_TextAnchor) string {
	if anchor == nil {
		return ""
	}
	var b strings.Builder
	for _, segment := range anchor.GetTextSegments() {
		start, end := segment.GetStartIndex(), segment.GetEndIndex()
		if start < 0 || end > int64(len(fullText)) || start >= end {
			continue
		}
		b.WriteString(fullText[start:end])
	}
	return b.String()
}

func polyBounds(poly *documentaipb.BoundingPoly, dim *documentaipb.Document_Page_Dimension) (left, top, width, height int) {
	if poly == nil {
		return 0, 0, 0, 0
	}

	if vertices := poly.GetVertices(); len(vertices) > 0 {
		minX, minY := int(vertices[0].GetX()), int(vertices[0].GetY())
		maxX, maxY := minX, minY
		for _, v := range vertices[1:] {
			x, y := int(v.GetX()), int(v.GetY())
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

	normalized := poly.GetNormalizedVertices()
	if len(normalized) == 0 || dim == nil {
		return 0, 0, 0, 0
	}

	w, h := float64(dim.GetWidth()), float64(dim.GetHeight())
	minX, minY := float64(normalized[0].GetX())*w, float64(normalized[0].GetY())*h
	maxX, maxY := minX, minY
	for _, v := range normalized[1:] {
		x, y := float64(v.GetX())*w, float64(v.GetY())*h
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
	return int(minX), int(minY), int(maxX - minX), int(maxY - minY)
}
