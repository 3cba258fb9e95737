package lineitem_test

import (
	"fmt"

	"billscan/internal/lineitem"
	"billscan/pkg/models"
)

func ExampleExtract() {
	boxes := []models.Box{
		{Text: "Particulars", Left: 10, Top: 50, Width: 100, Height: 12},
		{Text: "Qty", Left: 290, Top: 50, Width: 30, Height: 12},
		{Text: "Amount", Left: 480, Top: 50, Width: 60, Height: 12},

		{Text: "Consultation", Left: 10, Top: 80, Width: 110, Height: 12},
		{Text: "Charge", Left: 130, Top: 80, Width: 60, Height: 12},
		{Text: "2", Left: 300, Top: 80, Width: 10, Height: 12},
		{Text: "500", Left: 495, Top: 80, Width: 30, Height: 12},

		{Text: "Grand", Left: 10, Top: 110, Width: 55, Height: 12},
		{Text: "Total", Left: 70, Top: 110, Width: 50, Height: 12},
		{Text: "500", Left: 495, Top: 110, Width: 30, Height: 12},
	}

	for _, item := range lineitem.Extract(boxes) {
		fmt.Printf("%s: qty %g x rate %g = %g\n", item.ItemName, item.ItemQuantity, item.ItemRate, item.ItemAmount)
	}
	// Output:
	// Consultation Charge: qty 2 x rate 250 = 500
}
