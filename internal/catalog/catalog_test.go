package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"apmatch/internal/model"
)

const poCSV = `po_number,vendor_name,item_description,quantity,unit_price,total_amount
PO-2201,Acme Industrial,Widget,10,4.50,45.00
PO-2202,Globex Corp,Gadget,5,100.00,500.00
PO-2202,Globex Corp,Gadget (amended),5,100.00,500.00
PO-2203,Initech,Stapler,two,12.00,24.00
`

const deliveryCSV = `invoice_number,po_number,status,signed_by,delivery_date
INV-1001,PO-2201,DELIVERED,J. Doe,2026-01-15
INV-1002,PO-2202,PENDING,,2026-01-20
`

const emailCorpus = `From: ap@acme.example
To: buyer@corp.example
Date: Mon, 12 Jan 2026 09:30:00 +0000
Subject: PO-2201 price update
The unit price change on PO-2201 was approved by procurement.
---
From: buyer@corp.example
To: ap@acme.example
Date: Tue, 13 Jan 2026 14:00:00 +0000
Subject: Re: PO-2201 price update
Thanks, noted.
`

func writeCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "purchase_orders.csv"), []byte(poCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "delivery_receipts.csv"), []byte(deliveryCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "internal_emails.txt"), []byte(emailCorpus), 0o644))
	return dir
}

func TestLoadSession(t *testing.T) {
	dir := writeCatalogDir(t)

	session, err := LoadSession(dir)
	require.NoError(t, err)

	// Three well-formed PO rows (the malformed Initech row is excluded)
	assert.Equal(t, 3, session.PurchaseOrders.Len())
	assert.Equal(t, 2, session.Deliveries.Len())
	assert.Equal(t, 2, session.Emails.Len())
}

func TestLoadSession_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "purchase_orders.csv"), []byte(poCSV), 0o644))

	_, err := LoadSession(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delivery receipts")
}

func TestLoadSession_EmailCorpusOptional(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "purchase_orders.csv"), []byte(poCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "delivery_receipts.csv"), []byte(deliveryCSV), 0o644))

	session, err := LoadSession(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, session.Emails.Len())
}

func TestPurchaseOrders_Find(t *testing.T) {
	dir := writeCatalogDir(t)
	pos, err := LoadPurchaseOrders(filepath.Join(dir, "purchase_orders.csv"))
	require.NoError(t, err)

	t.Run("single match", func(t *testing.T) {
		matches, err := pos.Find("PO-2201")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Acme Industrial", matches[0].VendorName)
		assert.Equal(t, 10.0, matches[0].Quantity)
		assert.Equal(t, 4.5, matches[0].UnitPrice)
	})

	t.Run("duplicate po_number returns all rows", func(t *testing.T) {
		matches, err := pos.Find("PO-2202")
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("absent po_number returns empty", func(t *testing.T) {
		matches, err := pos.Find("PO-9999")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("malformed row surfaces its parse error", func(t *testing.T) {
		_, err := pos.Find("PO-2203")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "non-numeric quantity")
	})
}

func TestLoadPurchaseOrders_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "purchase_orders.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"po_number", "vendor_name", "item_description", "quantity", "unit_price", "total_amount"},
		{"PO-3301", "Umbrella Supplies", "Boxes", 20, 1.25, 25},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	pos, err := LoadPurchaseOrders(path)
	require.NoError(t, err)
	assert.Equal(t, 1, pos.Len())

	matches, err := pos.Find("PO-3301")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 20.0, matches[0].Quantity)
	assert.Equal(t, 1.25, matches[0].UnitPrice)
}

func TestFindTabular_PrefersCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "purchase_orders.csv"), []byte(poCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "purchase_orders.xlsx"), []byte("not a workbook"), 0o644))

	assert.Equal(t, filepath.Join(dir, "purchase_orders.csv"), findTabular(dir, "purchase_orders"))
}

func TestLoadDeliveries(t *testing.T) {
	dir := writeCatalogDir(t)
	dels, err := LoadDeliveries(filepath.Join(dir, "delivery_receipts.csv"))
	require.NoError(t, err)

	rec, ok := dels.ByInvoice("INV-1001")
	require.True(t, ok)
	assert.Equal(t, model.DeliveryDelivered, rec.Status)
	assert.Equal(t, "J. Doe", rec.SignedBy)

	rec, ok = dels.ByInvoice("INV-1002")
	require.True(t, ok)
	assert.Equal(t, model.DeliveryPending, rec.Status)

	_, ok = dels.ByInvoice("INV-9999")
	assert.False(t, ok)
}
