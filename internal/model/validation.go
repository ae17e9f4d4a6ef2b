package model

// ValidationStatus is the verdict of matching one invoice against the
// purchase order and delivery catalogs.
type ValidationStatus string

const (
	StatusPassed     ValidationStatus = "PASSED"
	StatusFailed     ValidationStatus = "FAILED"
	StatusPONotFound ValidationStatus = "PO_NOT_FOUND"
)

// Discrepancy records a single field where the invoice deviates from the
// purchase order beyond tolerance. Values are kept as display strings so the
// same record covers numeric variances and the vendor name mismatch.
// Blocking marks discrepancies that force a FAILED status; the vendor
// mismatch entry is non-blocking when the policy flag allows it.
type Discrepancy struct {
	Field           string  `json:"field"`
	InvoiceValue    string  `json:"invoice_value"`
	POValue         string  `json:"po_value"`
	VariancePercent float64 `json:"variance_percent"`
	Blocking        bool    `json:"blocking"`
}

// ValidationResult is computed exactly once per invoice as a pure function of
// (invoice, catalogs, tolerance config) and never mutated afterwards.
type ValidationResult struct {
	InvoiceNumber     string           `json:"invoice_number"`
	PONumber          string           `json:"po_number"`
	Status            ValidationStatus `json:"status"`
	Discrepancies     []Discrepancy    `json:"discrepancies"`
	DeliveryConfirmed bool             `json:"delivery_confirmed"`
}
