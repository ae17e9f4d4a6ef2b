// Package routing maps a validation verdict onto one of two terminal
// destinations. The decision is a pure function of the status, so retrying
// with the same result always lands on the same destination.
package routing

import "apmatch/internal/model"

// Destination is where an invoice goes after validation.
type Destination string

const (
	// AutoPost forwards the invoice and PO reference to the ledger.
	AutoPost Destination = "AUTO_POST"
	// Investigate forwards the invoice and verdict to the exception
	// investigator.
	Investigate Destination = "INVESTIGATE"
)

// Decide returns the routing destination for a validation status.
// PASSED auto-posts; everything else is investigated.
func Decide(status model.ValidationStatus) Destination {
	if status == model.StatusPassed {
		return AutoPost
	}
	return Investigate
}
