// Package validate matches a single invoice against the purchase order and
// delivery catalogs and produces a typed verdict. Validation is a pure
// function of its inputs: identical (invoice, catalogs, tolerances) always
// produce an identical result.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"apmatch/internal/catalog"
	"apmatch/internal/model"
)

// Tolerances carries the configured maximum allowed percentage deviations
// and the vendor mismatch policy.
type Tolerances struct {
	PricePercent    float64
	QuantityPercent float64
	// VendorMismatchBlocks decides whether a vendor name mismatch alone
	// forces a FAILED status. When false the mismatch is still recorded as
	// a discrepancy, but a non-blocking one.
	VendorMismatchBlocks bool
}

// DefaultTolerances are the stock thresholds: 5% price, 2% quantity,
// vendor mismatch blocking.
func DefaultTolerances() Tolerances {
	return Tolerances{PricePercent: 5, QuantityPercent: 2, VendorMismatchBlocks: true}
}

// Engine validates invoices under a fixed tolerance configuration.
// It holds no per-invoice state and is safe for concurrent use.
type Engine struct {
	tol Tolerances
}

func NewEngine(tol Tolerances) *Engine {
	return &Engine{tol: tol}
}

// Validate cross-references one invoice against the catalogs.
//
// Outcomes:
//   - po_number absent from the catalog: status PO_NOT_FOUND (not an error).
//   - duplicate po_number rows: *AmbiguousMatchError.
//   - malformed catalog row or zero-denominator PO numerics: *DataError.
//   - otherwise PASSED or FAILED with the discrepancy list filled in.
func (e *Engine) Validate(inv model.InvoiceRecord, pos *catalog.PurchaseOrders, dels *catalog.Deliveries) (model.ValidationResult, error) {
	res := model.ValidationResult{
		InvoiceNumber: inv.InvoiceNumber,
		PONumber:      inv.PONumber,
	}

	matches, rowErr := pos.Find(inv.PONumber)
	if rowErr != nil {
		return model.ValidationResult{}, &DataError{
			InvoiceNumber: inv.InvoiceNumber,
			Field:         "purchase_order",
			Reason:        "catalog row is malformed",
			Cause:         rowErr,
		}
	}
	switch {
	case len(matches) == 0:
		res.Status = model.StatusPONotFound
		res.Discrepancies = []model.Discrepancy{}
		return res, nil
	case len(matches) > 1:
		return model.ValidationResult{}, &AmbiguousMatchError{PONumber: inv.PONumber, Matches: len(matches)}
	}
	po := matches[0]

	if po.Quantity == 0 {
		return model.ValidationResult{}, &DataError{InvoiceNumber: inv.InvoiceNumber, Field: "quantity", Reason: "po quantity is zero"}
	}
	if po.UnitPrice == 0 {
		return model.ValidationResult{}, &DataError{InvoiceNumber: inv.InvoiceNumber, Field: "unit_price", Reason: "po unit price is zero"}
	}

	discrepancies := []model.Discrepancy{}
	for i, li := range inv.LineItems {
		if err := checkFinite(inv.InvoiceNumber, fieldName(i, len(inv.LineItems), "quantity"), li.Quantity); err != nil {
			return model.ValidationResult{}, err
		}
		if err := checkFinite(inv.InvoiceNumber, fieldName(i, len(inv.LineItems), "unit_price"), li.UnitPrice); err != nil {
			return model.ValidationResult{}, err
		}

		if v := variancePercent(li.Quantity, po.Quantity); v > e.tol.QuantityPercent {
			discrepancies = append(discrepancies, model.Discrepancy{
				Field:           fieldName(i, len(inv.LineItems), "quantity"),
				InvoiceValue:    formatAmount(li.Quantity),
				POValue:         formatAmount(po.Quantity),
				VariancePercent: v,
				Blocking:        true,
			})
		}
		if v := variancePercent(li.UnitPrice, po.UnitPrice); v > e.tol.PricePercent {
			discrepancies = append(discrepancies, model.Discrepancy{
				Field:           fieldName(i, len(inv.LineItems), "unit_price"),
				InvoiceValue:    formatAmount(li.UnitPrice),
				POValue:         formatAmount(po.UnitPrice),
				VariancePercent: v,
				Blocking:        true,
			})
		}
	}

	vendorMatches := strings.EqualFold(strings.TrimSpace(inv.VendorName), strings.TrimSpace(po.VendorName))
	if !vendorMatches {
		discrepancies = append(discrepancies, model.Discrepancy{
			Field:        "vendor_name",
			InvoiceValue: inv.VendorName,
			POValue:      po.VendorName,
			Blocking:     e.tol.VendorMismatchBlocks,
		})
	}

	// Absence of a delivery receipt does not change the status; it only
	// feeds the resolution brief's recommendation.
	if rec, ok := dels.ByInvoice(inv.InvoiceNumber); ok {
		res.DeliveryConfirmed = rec.Status == model.DeliveryDelivered
	}

	res.Discrepancies = discrepancies
	res.Status = model.StatusPassed
	for _, d := range discrepancies {
		if d.Blocking {
			res.Status = model.StatusFailed
			break
		}
	}
	return res, nil
}

func variancePercent(invoiceValue, poValue float64) float64 {
	return math.Abs(invoiceValue-poValue) / poValue * 100
}

func checkFinite(invoiceNumber, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DataError{InvoiceNumber: invoiceNumber, Field: field, Reason: "value is not a finite number"}
	}
	return nil
}

// fieldName keeps single-line invoices readable while disambiguating lines on
// multi-line ones.
func fieldName(i, total int, field string) string {
	if total <= 1 {
		return field
	}
	return fmt.Sprintf("line_%d.%s", i+1, field)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
