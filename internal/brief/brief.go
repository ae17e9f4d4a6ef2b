// Package brief assembles the structured exception report for an invoice
// that could not be auto-posted. Summaries are generated deterministically
// from the discrepancy list; no external generation is involved.
package brief

import (
	"fmt"
	"strings"
	"time"

	"apmatch/internal/model"
)

// approvalKeywords is the phrase set whose presence in evidence marks a
// variance as already blessed by someone on the thread.
var approvalKeywords = []string{"approved", "approve", "proceed", "go ahead"}

// Build creates the resolution brief for an invoice whose validation status
// is not PASSED. Evidence must already be ordered (newest first) by the
// investigator; it is carried verbatim for provenance.
func Build(inv model.InvoiceRecord, res model.ValidationResult, evidence []model.EmailRecord) model.ResolutionBrief {
	return model.ResolutionBrief{
		InvoiceNumber:     inv.InvoiceNumber,
		Summary:           summarize(inv, res),
		Discrepancies:     res.Discrepancies,
		Evidence:          evidence,
		RecommendedAction: recommend(res, evidence),
		BuiltAt:           time.Now().UTC(),
	}
}

func summarize(inv model.InvoiceRecord, res model.ValidationResult) string {
	var b strings.Builder

	switch res.Status {
	case model.StatusPONotFound:
		fmt.Fprintf(&b, "Invoice %s references purchase order %s, which does not exist in the catalog.",
			inv.InvoiceNumber, inv.PONumber)
	default:
		fmt.Fprintf(&b, "Invoice %s failed validation against purchase order %s with %d discrepanc%s.",
			inv.InvoiceNumber, inv.PONumber, len(res.Discrepancies), plural(len(res.Discrepancies), "y", "ies"))
		for _, d := range res.Discrepancies {
			if d.VariancePercent > 0 {
				fmt.Fprintf(&b, " Field %s: invoice %s vs PO %s (%.1f%% variance, tolerance exceeded).",
					d.Field, d.InvoiceValue, d.POValue, d.VariancePercent)
			} else {
				fmt.Fprintf(&b, " Field %s: invoice %q vs PO %q.", d.Field, d.InvoiceValue, d.POValue)
			}
		}
	}

	if !res.DeliveryConfirmed {
		b.WriteString(" Delivery has not been confirmed for this invoice.")
	}
	return b.String()
}

// recommend applies the action rules: a missing PO means the vendor must be
// contacted; a failed match with approval language in evidence can be
// approved with variance; anything else escalates.
func recommend(res model.ValidationResult, evidence []model.EmailRecord) model.RecommendedAction {
	if res.Status == model.StatusPONotFound {
		return model.ActionContactVendor
	}
	for _, rec := range evidence {
		text := strings.ToLower(rec.Subject + "\n" + rec.Body)
		for _, kw := range approvalKeywords {
			if strings.Contains(text, kw) {
				return model.ActionApproveVariance
			}
		}
	}
	return model.ActionEscalate
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
