package model

import "time"

// RecommendedAction is the human action a resolution brief suggests.
type RecommendedAction string

const (
	ActionContactVendor   RecommendedAction = "CONTACT_VENDOR"
	ActionApproveVariance RecommendedAction = "APPROVE_VARIANCE"
	ActionEscalate        RecommendedAction = "ESCALATE"
)

// ResolutionBrief is the structured exception report handed to a human when
// an invoice cannot be auto-posted. It exists if and only if the validation
// status is not PASSED, and is immutable once built. Discrepancies and
// Evidence carry the full provenance of the recommendation for audit.
type ResolutionBrief struct {
	InvoiceNumber     string            `json:"invoice_number"`
	Summary           string            `json:"summary"`
	Discrepancies     []Discrepancy     `json:"discrepancies"`
	Evidence          []EmailRecord     `json:"evidence"`
	RecommendedAction RecommendedAction `json:"recommended_action"`
	BuiltAt           time.Time         `json:"built_at"`
}
