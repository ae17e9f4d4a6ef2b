package model

import "time"

// PurchaseOrder is one row of the purchase order catalog. Catalogs are loaded
// once per session and treated as read-only snapshots.
type PurchaseOrder struct {
	PONumber        string  `json:"po_number"`
	VendorName      string  `json:"vendor_name"`
	ItemDescription string  `json:"item_description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	TotalAmount     float64 `json:"total_amount"`
}

// DeliveryStatus is the delivery receipt status column.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryOther     DeliveryStatus = "OTHER"
)

// ParseDeliveryStatus maps a raw status cell onto the enum. Anything that is
// not DELIVERED or PENDING collapses to OTHER.
func ParseDeliveryStatus(raw string) DeliveryStatus {
	switch DeliveryStatus(raw) {
	case DeliveryDelivered, DeliveryPending:
		return DeliveryStatus(raw)
	default:
		return DeliveryOther
	}
}

// DeliveryReceipt is one row of the delivery receipt catalog, keyed by
// invoice number.
type DeliveryReceipt struct {
	InvoiceNumber string         `json:"invoice_number"`
	PONumber      string         `json:"po_number"`
	Status        DeliveryStatus `json:"status"`
	SignedBy      string         `json:"signed_by"`
	DeliveryDate  string         `json:"delivery_date"` // YYYY-MM-DD
}

// EmailRecord is one parsed block of the internal email corpus.
// Date holds the parsed header value when it was parseable; RawDate always
// keeps the original header text for display.
type EmailRecord struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Date    time.Time `json:"date"`
	RawDate string    `json:"raw_date"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}
