package model

import "time"

// LineItem is a single billed line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// InvoiceRecord is the structured invoice produced by the extraction
// collaborator. It is created once per uploaded document and never mutated;
// the core pipeline only reads it.
type InvoiceRecord struct {
	InvoiceNumber string     `json:"invoice_number"`
	VendorName    string     `json:"vendor_name"`
	PONumber      string     `json:"po_number"`
	LineItems     []LineItem `json:"line_items"`
	ExtractedAt   time.Time  `json:"extracted_at"`
}

// TotalAmount sums the line item totals. It is the amount forwarded to the
// ledger when the invoice is auto-posted.
func (inv InvoiceRecord) TotalAmount() float64 {
	var sum float64
	for _, li := range inv.LineItems {
		sum += li.Total
	}
	return sum
}
