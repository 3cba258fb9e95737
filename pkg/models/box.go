package models

import "encoding/json"

// Box is a single recognized text fragment with its pixel bounding
// rectangle in page coordinates. Boxes are produced by OCR engines and
// consumed by the line-item extractor; they are never mutated once built.
type Box struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"conf,omitempty"`
}

// rawBox mirrors the box JSON shapes seen in the wild: some engines dump
// "w"/"h" instead of "width"/"height" and "confidence" instead of "conf".
type rawBox struct {
	Text       string   `json:"text"`
	Left       *float64 `json:"left"`
	Top        *float64 `json:"top"`
	Width      *float64 `json:"width"`
	W          *float64 `json:"w"`
	Height     *float64 `json:"height"`
	H          *float64 `json:"h"`
	Conf       *float64 `json:"conf"`
	Confidence *float64 `json:"confidence"`
}

// UnmarshalJSON accepts alternate key names for geometry and confidence.
// Missing numeric fields default to zero rather than failing the decode.
func (b *Box) UnmarshalJSON(data []byte) error {
	var raw rawBox
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(primary, alt *float64) int {
		if primary != nil {
			return int(*primary)
		}
		if alt != nil {
			return int(*alt)
		}
		return 0
	}

	b.Text = raw.Text
	b.Left = pick(raw.Left, nil)
	b.Top = pick(raw.Top, nil)
	b.Width = pick(raw.Width, raw.W)
	b.Height = pick(raw.Height, raw.H)
	if raw.Conf != nil {
		b.Confidence = *raw.Conf
	} else if raw.Confidence != nil {
		b.Confidence = *raw.Confidence
	}
	return nil
}
