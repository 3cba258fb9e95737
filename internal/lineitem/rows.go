package lineitem

import (
	"math"
	"sort"
)

const (
	// rowYTolerance is the maximum distance in pixels between a box's
	// vertical center and a row's running mean center for the box to
	// join the row. Absorbs baseline jitter on small fonts.
	rowYTolerance = 8.0

	// rowOverlapRatio is the minimum fraction of a box's own height that
	// must overlap a row's combined vertical span for the box to join
	// the row. Lets a tall currency glyph share a line with short digits.
	rowOverlapRatio = 0.6
)

// clusterRows groups boxes into visual rows. A box joins the first row
// whose running mean center is within rowYTolerance of the box center,
// or whose vertical span overlaps more than rowOverlapRatio of the box's
// height; otherwise it starts a new row. Rows come back sorted
// top-to-bottom by mean center, boxes within a row left-to-right.
func clusterRows(boxes []box) [][]box {
	sorted := make([]box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].top < sorted[j].top })

	var rows [][]box

	for _, b := range sorted {
		matched := false

		for i, row := range rows {
			if math.Abs(b.centerY-meanCenterY(row)) <= rowYTolerance {
				rows[i] = append(row, b)
				matched = true
				break
			}

			rowTop, rowBottom := rowSpan(row)
			overlap := math.Min(rowBottom, b.bottom) - math.Max(rowTop, b.top)
			if b.height > 0 && overlap/b.height > rowOverlapRatio {
				rows[i] = append(row, b)
				matched = true
				break
			}
		}

		if !matched {
			rows = append(rows, []box{b})
		}
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].left < row[j].left })
	}
	sort.SliceStable(rows, func(i, j int) bool { return meanCenterY(rows[i]) < meanCenterY(rows[j]) })

	return rows
}

func meanCenterY(row []box) float64 {
	var sum float64
	for _, b := range row {
		sum += b.centerY
	}
	return sum / float64(len(row))
}

func rowSpan(row []box) (top, bottom float64) {
	top = math.Inf(1)
	bottom = math.Inf(-1)
	for _, b := range row {
		top = math.Min(top, b.top)
		bottom = math.Max(bottom, b.bottom)
	}
	return top, bottom
}
