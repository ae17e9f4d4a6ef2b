// Package ledger is the boundary with the downstream ledger (ERP). The core
// builds a posting payload and hands it to a Poster; retry and backoff around
// a failing ledger belong to the caller, not here.
package ledger

import (
	"context"
	"time"
)

// Payload is the posting payload forwarded for an auto-posted invoice.
type Payload struct {
	InvoiceNumber string  `json:"invoice_number"`
	PONumber      string  `json:"po_number"`
	VendorName    string  `json:"vendor_name"`
	TotalAmount   float64 `json:"total_amount"`
}

// Posting is the confirmation returned by the ledger for a posted invoice.
type Posting struct {
	InvoiceNumber string    `json:"invoice_number"`
	PONumber      string    `json:"po_number"`
	VendorName    string    `json:"vendor_name"`
	TotalAmount   float64   `json:"total_amount"`
	Reference     string    `json:"reference"`
	PostedAt      time.Time `json:"posted_at"`
}

// Poster posts a validated invoice to the downstream ledger.
type Poster interface {
	Post(ctx context.Context, p Payload) (Posting, error)
}
