package models

// LineItem is a single billing row extracted from an invoice page.
// Amounts are rounded to 2 decimals before the item is emitted, and
// whenever rate and quantity are both known and nonzero the amount is
// reconciled against rate*quantity by the extractor's healing rules.
type LineItem struct {
	ItemName     string  `json:"item_name"`
	ItemAmount   float64 `json:"item_amount"`
	ItemRate     float64 `json:"item_rate"`
	ItemQuantity float64 `json:"item_quantity"`
}

// PageLineItems holds the line items extracted from a single page.
type PageLineItems struct {
	PageNo    string     `json:"page_no"`
	PageType  string     `json:"page_type,omitempty"`
	BillItems []LineItem `json:"bill_items"`
}

// ExtractionData is the document-level extraction result.
type ExtractionData struct {
	PagewiseLineItems []PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int             `json:"total_item_count"`
	ReconciledAmount  float64         `json:"reconciled_amount"`
}

// ExtractionResponse is the API envelope returned by the HTTP server.
// Extraction failures are reported in-band with IsSuccess=false rather
// than as transport errors.
type ExtractionResponse struct {
	IsSuccess bool            `json:"is_success"`
	Data      *ExtractionData `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// DocumentRequest is the body of an extraction request. Document is a
// local file path or a remote URL.
type DocumentRequest struct {
	Document string `json:"document" binding:"required"`
}
