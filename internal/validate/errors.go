package validate

import "fmt"

// DataError marks an invoice whose validation cannot proceed because a
// numeric field is missing, non-numeric, or a zero denominator. It is fatal
// to that single invoice; no partial ValidationResult is emitted.
type DataError struct {
	InvoiceNumber string
	Field         string
	Reason        string
	Cause         error
}

func (e *DataError) Error() string {
	msg := fmt.Sprintf("invoice %s: bad data in %s: %s", e.InvoiceNumber, e.Field, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error { return e.Cause }

// AmbiguousMatchError marks a duplicate po_number in the catalog. Validation
// refuses to silently select one of the rows.
type AmbiguousMatchError struct {
	PONumber string
	Matches  int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("po %s: %d catalog rows share this number", e.PONumber, e.Matches)
}
