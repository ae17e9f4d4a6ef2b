// Package catalog loads the per-session reference data an invoice is checked
// against: purchase orders, delivery receipts, and the internal email corpus.
// All three are immutable snapshots after loading, so any number of concurrent
// validations may read them without locking.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"apmatch/internal/model"
)

// PurchaseOrders is a read-only snapshot of the PO catalog.
// Rows whose numeric cells could not be parsed are not dropped silently:
// their parse error is kept per po_number so validation can surface a data
// error instead of fabricating values.
type PurchaseOrders struct {
	byNumber  map[string][]model.PurchaseOrder
	malformed map[string]error
	total     int
}

// Find returns every row matching the exact, case-sensitive po_number.
// The returned error is non-nil when the catalog contains a row for this
// po_number that failed to parse.
func (c *PurchaseOrders) Find(poNumber string) ([]model.PurchaseOrder, error) {
	if err, ok := c.malformed[poNumber]; ok {
		return nil, err
	}
	return c.byNumber[poNumber], nil
}

// Len reports the number of well-formed rows in the snapshot.
func (c *PurchaseOrders) Len() int { return c.total }

// Deliveries is a read-only snapshot of the delivery receipt catalog,
// keyed by invoice number.
type Deliveries struct {
	byInvoice map[string]model.DeliveryReceipt
}

// ByInvoice looks up the receipt for an invoice number.
func (c *Deliveries) ByInvoice(invoiceNumber string) (model.DeliveryReceipt, bool) {
	r, ok := c.byInvoice[invoiceNumber]
	return r, ok
}

// Len reports the number of receipts in the snapshot.
func (c *Deliveries) Len() int { return len(c.byInvoice) }

// Emails is the parsed, read-only email corpus in original order.
type Emails struct {
	records []model.EmailRecord
}

// Records returns the corpus in original order. Callers must not mutate it.
func (c *Emails) Records() []model.EmailRecord { return c.records }

// Len reports the number of parsed email blocks.
func (c *Emails) Len() int { return len(c.records) }

// Session bundles the three catalogs loaded for one processing session.
type Session struct {
	PurchaseOrders *PurchaseOrders
	Deliveries     *Deliveries
	Emails         *Emails
}

// LoadSession loads all catalogs from dir. Tabular catalogs may be CSV or
// XLSX; the email corpus is the ----delimited plain text file. A missing
// email corpus is tolerated (investigation then has nothing to search), but
// both tabular catalogs are required.
func LoadSession(dir string) (*Session, error) {
	pos, err := LoadPurchaseOrders(findTabular(dir, "purchase_orders"))
	if err != nil {
		return nil, fmt.Errorf("load purchase orders: %w", err)
	}
	dels, err := LoadDeliveries(findTabular(dir, "delivery_receipts"))
	if err != nil {
		return nil, fmt.Errorf("load delivery receipts: %w", err)
	}

	emails := &Emails{}
	emailPath := filepath.Join(dir, "internal_emails.txt")
	if _, statErr := os.Stat(emailPath); statErr == nil {
		emails, err = LoadEmails(emailPath)
		if err != nil {
			return nil, fmt.Errorf("load email corpus: %w", err)
		}
	}

	return &Session{PurchaseOrders: pos, Deliveries: dels, Emails: emails}, nil
}

// findTabular resolves base.csv or base.xlsx under dir, preferring CSV.
// When neither exists the CSV path is returned so the loader reports the
// missing file.
func findTabular(dir, base string) string {
	csvPath := filepath.Join(dir, base+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		return csvPath
	}
	xlsxPath := filepath.Join(dir, base+".xlsx")
	if _, err := os.Stat(xlsxPath); err == nil {
		return xlsxPath
	}
	return csvPath
}
