// Package investigate searches the session email corpus for evidence
// relevant to a failed or unmatched invoice.
package investigate

import (
	"sort"
	"strings"

	"apmatch/internal/catalog"
	"apmatch/internal/model"
)

// DefaultMaxEvidence caps the evidence list when the caller passes a
// non-positive limit.
const DefaultMaxEvidence = 5

// Search selects emails whose subject or body mentions the invoice's
// po_number or invoice_number (case-insensitive substring). Matches are
// ordered by date descending; records with equal or unparseable dates keep
// their original corpus order. The result is truncated to maxEvidence and an
// empty list is a valid outcome.
func Search(inv model.InvoiceRecord, corpus *catalog.Emails, maxEvidence int) []model.EmailRecord {
	if maxEvidence <= 0 {
		maxEvidence = DefaultMaxEvidence
	}

	needles := make([]string, 0, 2)
	if inv.PONumber != "" {
		needles = append(needles, strings.ToLower(inv.PONumber))
	}
	if inv.InvoiceNumber != "" {
		needles = append(needles, strings.ToLower(inv.InvoiceNumber))
	}

	matched := make([]model.EmailRecord, 0)
	for _, rec := range corpus.Records() {
		haystack := strings.ToLower(rec.Subject + "\n" + rec.Body)
		for _, n := range needles {
			if strings.Contains(haystack, n) {
				matched = append(matched, rec)
				break
			}
		}
	}

	// Stable keeps corpus order for ties.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	if len(matched) > maxEvidence {
		matched = matched[:maxEvidence]
	}
	return matched
}
