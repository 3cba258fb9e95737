package lineitem

import "testing"

func TestClusterRowsByVerticalCenter(t *testing.T) {
	boxes := []box{
		makeBox("Consultation", 10, 100, 120, 12),
		makeBox("500", 400, 102, 30, 12),
		makeBox("Room", 10, 140, 50, 12),
		makeBox("Rent", 65, 141, 45, 12),
		makeBox("2000", 400, 139, 40, 12),
	}

	rows := clusterRows(boxes)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 3 {
		t.Fatalf("row sizes = %d, %d, want 2, 3", len(rows[0]), len(rows[1]))
	}
	if rows[0][0].text != "Consultation" || rows[0][1].text != "500" {
		t.Errorf("first row out of reading order: %q, %q", rows[0][0].text, rows[0][1].text)
	}
}

func TestClusterRowsOrdersBoxesLeftToRight(t *testing.T) {
	boxes := []box{
		makeBox("500", 400, 100, 30, 12),
		makeBox("2", 300, 100, 10, 12),
		makeBox("Charge", 80, 100, 60, 12),
		makeBox("X-Ray", 10, 100, 60, 12),
	}

	rows := clusterRows(boxes)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{"X-Ray", "Charge", "2", "500"}
	for i, b := range rows[0] {
		if b.text != want[i] {
			t.Errorf("position %d = %q, want %q", i, b.text, want[i])
		}
	}
}

func TestClusterRowsTallSymbolOverlap(t *testing.T) {
	// A tall currency glyph whose center sits 11px off the row mean still
	// joins the row because it overlaps the digits by its full height.
	boxes := []box{
		makeBox("₹", 390, 96, 12, 40),
		makeBox("500", 405, 100, 30, 10),
	}

	rows := clusterRows(boxes)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0].text != "₹" || rows[0][1].text != "500" {
		t.Errorf("row = %q, %q, want ₹, 500", rows[0][0].text, rows[0][1].text)
	}
}

func TestClusterRowsSplitsDistantLines(t *testing.T) {
	boxes := []box{
		makeBox("Particulars", 10, 50, 100, 12),
		makeBox("Consultation", 10, 80, 120, 12),
		makeBox("Pharmacy", 10, 110, 90, 12),
	}

	rows := clusterRows(boxes)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0].text != "Particulars" || rows[2][0].text != "Pharmacy" {
		t.Errorf("rows not ordered top to bottom")
	}
}
