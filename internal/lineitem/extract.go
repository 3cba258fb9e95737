package lineitem

import (
	"math"
	"strings"

	"billscan/pkg/models"
)

// totalKeywords mark summary rows that must never become line items.
var totalKeywords = []string{"total", "grand total", "net amount", "amount due"}

// Extract converts the OCR boxes of one page into structured line
// items. It is deterministic for identical input and returns an empty
// slice, never an error, for pages it cannot read; a corrupted box or
// unparseable token only ever costs its own row.
func Extract(boxes []models.Box) []models.LineItem {
	items := make([]models.LineItem, 0)
	if len(boxes) == 0 {
		return items
	}

	normalized := normalizeBoxes(boxes)
	rows := clusterRows(normalized)
	if len(rows) == 0 {
		return items
	}

	headerIdx, headerRoles := extractHeaderInfo(rows)
	dataRows := rows
	if headerIdx >= 0 {
		dataRows = rows[headerIdx+1:]
	}
	fallbackCenters := estimateNumericColumns(dataRows)

	pendingDescription := ""

	for _, row := range dataRows {
		row = mergeAdjacentNumericTokens(row)

		var nameTokens, numericTokens []box
		for _, b := range row {
			if isNumericText(b.text) {
				numericTokens = append(numericTokens, b)
			} else {
				nameTokens = append(nameTokens, b)
			}
		}

		text := strings.TrimSpace(rowText(nameTokens))
		lower := strings.ToLower(text)

		if containsAny(lower, totalKeywords) {
			continue
		}
		if _, ignored := ignoredPhrases[stripNoise(lower)]; ignored {
			continue
		}
		if strings.HasPrefix(lower, "page of") || strings.HasPrefix(lower, "printed on") {
			continue
		}

		if len(numericTokens) == 0 {
			if text != "" {
				pendingDescription = strings.TrimSpace(pendingDescription + " " + text)
			}
			continue
		}

		description := text
		if pendingDescription != "" {
			description = strings.TrimSpace(pendingDescription + " " + text)
		}
		pendingDescription = ""
		if description == "" {
			description = strings.TrimSpace(rowText(row))
		}

		description = cleanDescription(description)
		if description == "" {
			continue
		}
		if _, ignored := ignoredPhrases[strings.ToLower(description)]; ignored {
			continue
		}

		values := assignNumericColumns(numericTokens, headerRoles, fallbackCenters)
		values = deriveColumnsFromValues(numericTokens, values)

		item, ok := finalizeItem(description, values)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	// Leftover pending text at end of page is trailing footer noise,
	// not part of the last item.

	return items
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// finalizeItem heals missing numeric fields and produces the emitted
// tuple. Healing rules apply in priority order:
//
//  1. amount missing or zero with rate and quantity known: amount = rate*quantity
//  2. rate missing with amount and nonzero quantity: rate = amount/quantity
//  3. quantity missing with amount and nonzero rate: quantity = amount/rate
//  4. only rate known: amount = rate, quantity = 1
//  5. only amount known: rate = amount, quantity = 1
//
// Unresolved fields default to amount=0, rate=0, quantity=1. A final
// pass replaces a zero amount with a positive rate*quantity; a nonzero
// extracted amount stays authoritative even when it disagrees with the
// computed value.
func finalizeItem(name string, values roleMap) (models.LineItem, bool) {
	itemName := correctSpelling(strings.Trim(stripTrailingNumbers(name), " -"))
	if itemName == "" {
		return models.LineItem{}, false
	}

	amount, hasAmount := values[roleAmount]
	rate, hasRate := values[roleRate]
	quantity, hasQuantity := values[roleQuantity]

	if (!hasAmount || amount == 0) && hasRate && hasQuantity {
		amount = rate * quantity
		hasAmount = true
	}
	if hasAmount && !hasRate && hasQuantity && quantity != 0 {
		rate = amount / quantity
		hasRate = true
	}
	if hasAmount && hasRate && !hasQuantity && rate != 0 {
		quantity = amount / rate
		hasQuantity = true
	}
	if !hasAmount && hasRate && !hasQuantity {
		amount = rate
		quantity = 1
		hasAmount, hasQuantity = true, true
	}
	if hasAmount && !hasRate && !hasQuantity {
		rate = amount
		quantity = 1
		hasRate, hasQuantity = true, true
	}

	if !hasAmount {
		amount = 0
	}
	if !hasRate {
		rate = 0
	}
	if !hasQuantity {
		quantity = 1
	}

	if computed := rate * quantity; amount == 0 && computed > 0 {
		amount = computed
	}

	return models.LineItem{
		ItemName:     itemName,
		ItemAmount:   round2(amount),
		ItemRate:     round2(rate),
		ItemQuantity: round2(quantity),
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
