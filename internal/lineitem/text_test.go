package lineitem

import "testing"

func TestStripNoise(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"embedded date", "Consultation 12/05/2024 Charge", "Consultation Charge"},
		{"scan artifacts", "Room~Rent_»Charges", "RoomRentCharges"},
		{"stray punctuation", "Pharmacy * Charges", "Pharmacy Charges"},
		{"edge trim", " .,Nursing Charges;- ", "Nursing Charges"},
		{"header word survives", "Particulars", "Particulars"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripNoise(tc.in); got != tc.want {
				t.Errorf("stripNoise(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"artifact words dropped", "Particulars Amount X-Ray", "X-Ray"},
		{"date and artifact", "Date 12/05/2024 Room Rent", "Room Rent"},
		{"plain text unchanged", "Consultation Charge", "Consultation Charge"},
		{"all artifacts leaves nothing", "Particulars Date Amount", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanDescription(tc.in); got != tc.want {
				t.Errorf("cleanDescription(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCorrectSpelling(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"known misspelling", "consuitation charge", "Consultation Charge"},
		{"phrase garble", "m rant stzp down tou", "Room Rent Step Down Icu"},
		{"word misspellings", "nersing charges", "Nursing Charges"},
		{"fuzzy vocabulary match", "pharmacv", "Pharmacy"},
		{"clean text only cased", "room rent", "Room Rent"},
		{"short tokens untouched", "icu bed", "Icu Bed"},
		{"unknown word kept", "gauze roll", "Gauze Roll"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := correctSpelling(tc.in); got != tc.want {
				t.Errorf("correctSpelling(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClosestTerm(t *testing.T) {
	if term, ok := closestTerm("pharmacv"); !ok || term != "pharmacy" {
		t.Errorf("closestTerm(pharmacv) = %q, %v, want pharmacy, true", term, ok)
	}
	if term, ok := closestTerm("consultatiom"); !ok || term != "consultation" {
		t.Errorf("closestTerm(consultatiom) = %q, %v, want consultation, true", term, ok)
	}
	if _, ok := closestTerm("gauze"); ok {
		t.Error("closestTerm(gauze) matched, want no match")
	}
}

func TestStripTrailingNumbers(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"X-Ray Chest 2 150", "X-Ray Chest"},
		{"Room Rent ₹2000", "Room Rent"},
		{"2 X-Ray Films", "2 X-Ray Films"},
		{"500", ""},
		{"Consultation", "Consultation"},
	}

	for _, tc := range testCases {
		if got := stripTrailingNumbers(tc.in); got != tc.want {
			t.Errorf("stripTrailingNumbers(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"room rent", "Room Rent"},
		{"x-ray and ecg", "X-Ray And Ecg"},
		{"STEP DOWN ICU", "Step Down Icu"},
		{"rr -2 room rent", "Rr -2 Room Rent"},
	}

	for _, tc := range testCases {
		if got := titleCase(tc.in); got != tc.want {
			t.Errorf("titleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
