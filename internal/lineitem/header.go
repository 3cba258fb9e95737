package lineitem

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Column roles a numeric token can be assigned to.
const (
	roleQuantity = "quantity"
	roleRate     = "rate"
	roleAmount   = "amount"
	roleDiscount = "discount"
)

// columnRoles fixes the iteration order wherever roles are compared or
// assigned; first-closest-wins tie breaking depends on it.
var columnRoles = []string{roleQuantity, roleRate, roleAmount, roleDiscount}

// roleMap maps a column role to an estimated x-center in page pixels.
// It is derived once per page, either from a header row or from
// fallback clustering, and discarded afterwards.
type roleMap map[string]float64

// headerHints are words whose literal presence marks a row as a table
// header even when no role can be fuzzy-matched.
var headerHints = []string{
	"item",
	"description",
	"service",
	"charge",
	"qty",
	"quantity",
	"rate",
	"price",
	"amount",
	"total",
	"net amount",
	"discount",
}

var headerRoleKeywords = map[string][]string{
	roleQuantity: {"qty", "quantity", "hours", "hrs", "day", "days", "qty/hrs", "qtyhrs"},
	roleRate:     {"rate", "price", "unit", "tariff", "charges"},
	roleAmount:   {"amount", "net amount", "net", "total", "net amt", "amt"},
	roleDiscount: {"disc", "discount"},
}

const (
	// roleMatchCutoff is the minimum similarity ratio for a header word
	// to count as a role keyword hit.
	roleMatchCutoff = 0.78

	// headerScanRows bounds how deep into the page the header search
	// goes; invoice headers sit at the top when they exist at all.
	headerScanRows = 6
)

var (
	wordSplitRe = regexp.MustCompile(`[^\w/]+`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// similarity is the difflib SequenceMatcher ratio over characters,
// matching the arithmetic the role and vocabulary cutoffs were tuned
// against.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func normalizeToken(token string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(token), "")
}

// matchRole fuzzy-matches the words of a header cell against the role
// keyword sets and returns the best-scoring role at or above the
// cutoff, or "" when nothing qualifies.
func matchRole(text string) string {
	parts := wordSplitRe.Split(strings.ToLower(text), -1)
	bestRole := ""
	bestScore := 0.0

	for _, part := range parts {
		normalized := normalizeToken(part)
		if normalized == "" {
			continue
		}
		for _, role := range columnRoles {
			for _, keyword := range headerRoleKeywords[role] {
				score := similarity(normalized, normalizeToken(keyword))
				if score > bestScore {
					bestScore = score
					bestRole = role
				}
			}
		}
	}

	if bestScore >= roleMatchCutoff {
		return bestRole
	}
	return ""
}

// mapHeaderColumns builds a role map from one row, averaging the
// x-centers of all cells that matched the same role.
func mapHeaderColumns(row []box) roleMap {
	centers := make(map[string][]float64)
	for _, b := range row {
		if role := matchRole(b.text); role != "" {
			centers[role] = append(centers[role], b.centerX)
		}
	}

	roles := roleMap{}
	for role, vals := range centers {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		roles[role] = sum / float64(len(vals))
	}
	return roles
}

// extractHeaderInfo scans the first headerScanRows rows for a header.
// A row qualifies when at least 2 distinct roles fuzzy-match, or when at
// least 2 literal header hints appear in its text. Absence of a header
// is reported as index -1 with an empty role map; many invoices have no
// parseable header and downstream falls back to column estimation.
func extractHeaderInfo(rows [][]box) (int, roleMap) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for idx := 0; idx < limit; idx++ {
		row := rows[idx]
		roles := mapHeaderColumns(row)
		if len(roles) >= 2 {
			return idx, roles
		}

		text := strings.ToLower(rowText(row))
		hits := 0
		for _, hint := range headerHints {
			if strings.Contains(text, hint) {
				hits++
			}
		}
		if hits >= 2 {
			return idx, roles
		}
	}

	return -1, roleMap{}
}

func rowText(row []box) string {
	parts := make([]string, len(row))
	for i, b := range row {
		parts[i] = b.text
	}
	return strings.Join(parts, " ")
}
