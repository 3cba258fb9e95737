// Package lineitem converts raw OCR word boxes for one invoice page into
// structured billing line items (name, quantity, rate, amount).
//
// The extractor is layout-aware: it clusters boxes into visual rows,
// infers which x-coordinate ranges correspond to which semantic column
// (with or without a parseable header row), repairs OCR-garbled numbers
// and words, and reconciles missing or conflicting numeric fields via
// the quantity*rate=amount relationship.
//
// Extract is a pure function of its input: no I/O, no shared state, and
// deterministic output for identical box geometry, text and order. Pages
// may therefore be processed in parallel without coordination.
package lineitem

import (
	"strings"

	"billscan/pkg/models"
)

// box is a normalized OCR box with derived geometry. Coordinates are
// carried as float64 so centers keep their fractional half-pixels.
type box struct {
	text    string
	left    float64
	top     float64
	width   float64
	height  float64
	centerX float64
	centerY float64
	bottom  float64
}

func normalizeBox(b models.Box) box {
	left := float64(b.Left)
	top := float64(b.Top)
	width := float64(b.Width)
	height := float64(b.Height)

	return box{
		text:    strings.TrimSpace(b.Text),
		left:    left,
		top:     top,
		width:   width,
		height:  height,
		centerX: left + width/2,
		centerY: top + height/2,
		bottom:  top + height,
	}
}

// normalizeBoxes canonicalizes raw boxes and drops those whose trimmed
// text is empty; such boxes carry no signal for row or column inference.
func normalizeBoxes(in []models.Box) []box {
	out := make([]box, 0, len(in))
	for _, b := range in {
		nb := normalizeBox(b)
		if nb.text == "" {
			continue
		}
		out = append(out, nb)
	}
	return out
}
