package lineitem

import "testing"

func TestMatchRole(t *testing.T) {
	testCases := []struct {
		text string
		want string
	}{
		{"Qty", roleQuantity},
		{"Qty/Hrs", roleQuantity},
		{"Quantiy", roleQuantity}, // OCR misread, above the fuzzy cutoff
		{"Rate", roleRate},
		{"Unit Price", roleRate},
		{"Amount", roleAmount},
		{"Amt", roleAmount},
		{"Net Amount", roleAmount},
		{"Disc", roleDiscount},
		{"Particulars", ""},
		{"Apollo", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := matchRole(tc.text); got != tc.want {
			t.Errorf("matchRole(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExtractHeaderInfoByRoles(t *testing.T) {
	rows := [][]box{
		{makeBox("Apollo", 10, 10, 60, 12), makeBox("Hospital", 75, 10, 80, 12)},
		{
			makeBox("Particulars", 10, 50, 100, 12),
			makeBox("Qty", 290, 50, 30, 12),
			makeBox("Rate", 380, 50, 40, 12),
			makeBox("Amount", 480, 50, 60, 12),
		},
		{makeBox("Consultation", 10, 80, 120, 12), makeBox("500", 495, 80, 30, 12)},
	}

	idx, roles := extractHeaderInfo(rows)
	if idx != 1 {
		t.Fatalf("header index = %d, want 1", idx)
	}
	if len(roles) != 3 {
		t.Fatalf("expected 3 roles, got %d: %v", len(roles), roles)
	}
	if got := roles[roleQuantity]; got != 305 {
		t.Errorf("quantity column = %v, want 305", got)
	}
	if got := roles[roleAmount]; got != 510 {
		t.Errorf("amount column = %v, want 510", got)
	}
}

func TestExtractHeaderInfoByLiteralHints(t *testing.T) {
	// No cell fuzzy-matches a role, but two literal hints mark the row.
	rows := [][]box{
		{
			makeBox("Description", 10, 50, 100, 12),
			makeBox("of", 120, 50, 20, 12),
			makeBox("Service", 150, 50, 70, 12),
		},
	}

	idx, roles := extractHeaderInfo(rows)
	if idx != 0 {
		t.Fatalf("header index = %d, want 0", idx)
	}
	if len(roles) != 0 {
		t.Errorf("expected empty role map, got %v", roles)
	}
}

func TestExtractHeaderInfoAbsent(t *testing.T) {
	rows := [][]box{
		{makeBox("Apollo", 10, 10, 60, 12), makeBox("Hospital", 75, 10, 80, 12)},
		{makeBox("Consultation", 10, 80, 120, 12), makeBox("500", 495, 80, 30, 12)},
	}

	idx, roles := extractHeaderInfo(rows)
	if idx != -1 {
		t.Errorf("header index = %d, want -1", idx)
	}
	if len(roles) != 0 {
		t.Errorf("expected empty role map, got %v", roles)
	}
}

func TestExtractHeaderInfoScanDepth(t *testing.T) {
	// A header past the scan depth is never picked up.
	var rows [][]box
	for i := 0; i < headerScanRows; i++ {
		rows = append(rows, []box{makeBox("noise", 10, float64(10+30*i), 50, 12)})
	}
	rows = append(rows, []box{
		makeBox("Qty", 290, 300, 30, 12),
		makeBox("Amount", 480, 300, 60, 12),
	})

	idx, _ := extractHeaderInfo(rows)
	if idx != -1 {
		t.Errorf("header index = %d, want -1 for header below scan depth", idx)
	}
}

func TestMapHeaderColumnsAveragesDuplicates(t *testing.T) {
	// "Net" and "Amount" both resolve to amount; the column center is the
	// mean of their x-centers.
	row := []box{
		makeBox("Net", 440, 50, 40, 12),
		makeBox("Amount", 500, 50, 60, 12),
	}

	roles := mapHeaderColumns(row)
	if got := roles[roleAmount]; got != 495 {
		t.Errorf("amount column = %v, want 495", got)
	}
}
