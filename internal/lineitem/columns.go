package lineitem

import (
	"math"
	"sort"
	"unicode/utf8"
)

const (
	// columnClusterTolerance merges numeric x-centers into the same
	// virtual column when they sit within this many pixels of the
	// cluster's last member.
	columnClusterTolerance = 20.0

	// maxNumericTokenLen excludes long pseudo-numeric strings (IDs,
	// account numbers) from column estimation. Counted in runes, so a
	// multi-byte currency symbol is one character.
	maxNumericTokenLen = 12

	// deriveErrorLimit is the largest |quantity*rate - amount| in
	// currency units for a permutation candidate to be accepted.
	deriveErrorLimit = 5.0
)

// estimateNumericColumns infers virtual column positions when no header
// is usable: the x-centers of all numeric-looking tokens across the data
// rows are clustered by 1-D proximity and the sorted cluster centers are
// returned.
func estimateNumericColumns(rows [][]box) []float64 {
	var positions []float64
	for _, row := range rows {
		for _, b := range row {
			if isNumericText(b.text) && utf8.RuneCountInString(b.text) <= maxNumericTokenLen {
				positions = append(positions, b.centerX)
			}
		}
	}
	if len(positions) == 0 {
		return nil
	}

	centers := clusterPositions(positions, columnClusterTolerance)
	sort.Float64s(centers)
	return centers
}

func clusterPositions(positions []float64, tolerance float64) []float64 {
	sorted := make([]float64, len(positions))
	copy(sorted, positions)
	sort.Float64s(sorted)

	var clusters [][]float64
	for _, pos := range sorted {
		if len(clusters) == 0 || math.Abs(pos-last(clusters[len(clusters)-1])) > tolerance {
			clusters = append(clusters, []float64{pos})
		} else {
			clusters[len(clusters)-1] = append(clusters[len(clusters)-1], pos)
		}
	}

	centers := make([]float64, len(clusters))
	for i, cluster := range clusters {
		var sum float64
		for _, v := range cluster {
			sum += v
		}
		centers[i] = sum / float64(len(cluster))
	}
	return centers
}

func last(vals []float64) float64 {
	return vals[len(vals)-1]
}

// buildFallbackRoles labels the rightmost three estimated columns as
// quantity/rate/amount. With fewer columns the rightmost labels win:
// two columns become rate/amount, one becomes amount.
func buildFallbackRoles(columnCenters []float64) roleMap {
	if len(columnCenters) == 0 {
		return roleMap{}
	}

	centers := make([]float64, len(columnCenters))
	copy(centers, columnCenters)
	sort.Float64s(centers)
	if len(centers) > 3 {
		centers = centers[len(centers)-3:]
	}

	labels := []string{roleQuantity, roleRate, roleAmount}
	start := len(labels) - len(centers)
	roles := roleMap{}
	for i, center := range centers {
		roles[labels[start+i]] = center
	}
	return roles
}

// assignNumericColumns maps each numeric token of a data row to a role
// by nearest column center. With a degenerate single-column layout (or
// no columns detected at all) every numeric token lands on amount.
// Tokens that fail to parse are skipped, never fatal to the row.
func assignNumericColumns(numericBoxes []box, headerRoles roleMap, fallbackCenters []float64) roleMap {
	result := roleMap{}
	if len(numericBoxes) == 0 {
		return result
	}

	labelCenters := headerRoles
	if len(labelCenters) == 0 {
		labelCenters = buildFallbackRoles(fallbackCenters)
	}

	for _, b := range numericBoxes {
		var label string
		if len(labelCenters) == 0 {
			label = roleAmount
		} else if _, ok := labelCenters[roleAmount]; ok && len(labelCenters) == 1 {
			label = roleAmount
		} else {
			best := math.Inf(1)
			for _, role := range columnRoles {
				center, ok := labelCenters[role]
				if !ok {
					continue
				}
				if d := math.Abs(b.centerX - center); d < best {
					best = d
					label = role
				}
			}
			if label == "" {
				label = roleAmount
			}
		}

		value, err := parseNumeric(b.text)
		if err != nil {
			continue
		}
		result[label] = value
	}

	return result
}

// deriveColumnsFromValues resolves ambiguous or incomplete assignments
// from the row's raw numeric values, sorted by x-position. With three or
// more values it brute-forces ordered triples as (quantity, rate,
// amount) candidates and keeps the one minimizing |q*r - a|, accepting
// it only under deriveErrorLimit. Failing that, positional heuristics
// fill the roles, but only when nothing was assigned from columns.
func deriveColumnsFromValues(numericBoxes []box, values roleMap) roleMap {
	type numberAt struct {
		value float64
		x     float64
	}

	var numbers []numberAt
	for _, b := range numericBoxes {
		v, err := parseNumeric(b.text)
		if err != nil {
			continue
		}
		numbers = append(numbers, numberAt{value: v, x: b.centerX})
	}
	if len(numbers) == 0 {
		return values
	}

	sort.SliceStable(numbers, func(i, j int) bool { return numbers[i].x < numbers[j].x })
	vals := make([]float64, len(numbers))
	for i, n := range numbers {
		vals[i] = n.value
	}

	bestError := math.Inf(1)
	var bestQty, bestRate, bestAmount float64
	found := false

	if len(vals) >= 3 {
		for qi := range vals {
			for ri := range vals {
				if ri == qi {
					continue
				}
				for ai := range vals {
					if ai == qi || ai == ri {
						continue
					}
					qty, rate, amount := vals[qi], vals[ri], vals[ai]
					if qty < 0 || rate < 0 || amount < 0 {
						continue
					}
					if qty == 0 || rate == 0 {
						continue
					}
					if err := math.Abs(qty*rate - amount); err < bestError {
						bestError = err
						bestQty, bestRate, bestAmount = qty, rate, amount
						found = true
					}
				}
			}
		}
	}

	if found && bestError <= deriveErrorLimit {
		values[roleQuantity] = bestQty
		values[roleRate] = bestRate
		values[roleAmount] = bestAmount
		return values
	}

	switch {
	case len(vals) == 3 && len(values) == 0:
		values[roleQuantity] = vals[0]
		values[roleRate] = vals[1]
		values[roleAmount] = vals[2]
	case len(vals) == 2 && len(values) == 0:
		v1, v2 := vals[0], vals[1]
		if v1 < 100 && v1 == math.Trunc(v1) && v2 > v1 {
			values[roleQuantity] = v1
			values[roleAmount] = v2
		} else {
			values[roleRate] = v1
			values[roleAmount] = v2
		}
	case len(vals) == 1 && len(values) == 0:
		values[roleAmount] = vals[0]
	}

	return values
}
