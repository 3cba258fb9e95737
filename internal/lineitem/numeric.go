package lineitem

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotNumeric signals that a token cannot be read as a number even
// after OCR repairs. The token is then excluded from numeric assignment
// rather than failing the row.
var ErrNotNumeric = errors.New("token is not numeric")

// numericPattern is the numeric grammar: optional sign, digits with
// optional grouping/decimal separators. Matched against the full token
// after spaces and currency symbols are stripped.
var numericPattern = regexp.MustCompile(`^[-+]?[\d\s,]*\.?\d+$`)

const currencySymbols = "₹$€£¥"

// mergeGap is the maximum horizontal gap in pixels between two numeric
// tokens for them to be rejoined into one. OCR engines frequently split
// a printed number at a faint decimal point.
const mergeGap = 18.0

func isNumericText(text string) bool {
	stripped := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	if stripped == "" {
		return false
	}
	stripped = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencySymbols, r) {
			return -1
		}
		return r
	}, stripped)
	return numericPattern.MatchString(stripped)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseNumeric converts an OCR token into a float, repairing the common
// corruptions in order:
//
//  1. a space followed by exactly two trailing digits is an elided
//     decimal point ("448 00" -> 448.00);
//  2. currency symbols are stripped;
//  3. a comma with no period and exactly two digits after it is a
//     European decimal separator ("12,34" -> 12.34);
//  4. remaining grouping commas and spaces are stripped;
//  5. doubled periods collapse, stray pipes are dropped, and leading or
//     trailing periods are trimmed.
func parseNumeric(token string) (float64, error) {
	cleaned := strings.TrimSpace(token)

	if strings.Contains(cleaned, " ") {
		parts := strings.Fields(cleaned)
		last := parts[len(parts)-1]
		if len(parts) >= 2 && len(last) == 2 && isDigits(last) {
			cleaned = strings.Join(parts[:len(parts)-1], "") + "." + last
		}
	}

	for _, sym := range currencySymbols {
		cleaned = strings.ReplaceAll(cleaned, string(sym), "")
	}

	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) == 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "..", ".")
	cleaned = strings.ReplaceAll(cleaned, "|", "")
	cleaned = strings.Trim(cleaned, ".")

	switch cleaned {
	case "", "-", ".", "+", ",":
		return 0, ErrNotNumeric
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return value, nil
}

// mergeAdjacentNumericTokens rejoins OCR-fragmented numbers within a
// row: adjacent numeric tokens closer than mergeGap are merged
// left-to-right. The join keeps a space so parseNumeric's
// space-as-decimal repair still sees the original separation; width and
// center are recomputed from the union span.
func mergeAdjacentNumericTokens(row []box) []box {
	var merged []box

	for idx := 0; idx < len(row); idx++ {
		current := row[idx]
		for idx+1 < len(row) {
			next := row[idx+1]
			if !isNumericText(current.text) || !isNumericText(next.text) {
				break
			}
			if next.left-(current.left+current.width) > mergeGap {
				break
			}
			current.text = current.text + " " + next.text
			current.width = (next.left + next.width) - current.left
			current.centerX = current.left + current.width/2
			idx++
		}
		merged = append(merged, current)
	}

	return merged
}
