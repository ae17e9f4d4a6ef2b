package validate

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apmatch/internal/catalog"
	"apmatch/internal/model"
)

const poCSV = `po_number,vendor_name,item_description,quantity,unit_price,total_amount
PO-2201,Acme Industrial,Widget,10,4.50,45.00
PO-2202,Globex Corp,Gadget,5,100.00,500.00
PO-2202,Globex Corp,Gadget (amended),5,100.00,500.00
PO-2203,Initech,Stapler,two,12.00,24.00
PO-2204,Hooli,Server,0,250.00,0
`

const deliveryCSV = `invoice_number,po_number,status,signed_by,delivery_date
INV-1001,PO-2201,DELIVERED,J. Doe,2026-01-15
INV-1002,PO-2201,PENDING,,2026-01-20
`

func loadCatalogs(t *testing.T) (*catalog.PurchaseOrders, *catalog.Deliveries) {
	t.Helper()
	dir := t.TempDir()
	poPath := filepath.Join(dir, "purchase_orders.csv")
	delPath := filepath.Join(dir, "delivery_receipts.csv")
	require.NoError(t, os.WriteFile(poPath, []byte(poCSV), 0o644))
	require.NoError(t, os.WriteFile(delPath, []byte(deliveryCSV), 0o644))

	pos, err := catalog.LoadPurchaseOrders(poPath)
	require.NoError(t, err)
	dels, err := catalog.LoadDeliveries(delPath)
	require.NoError(t, err)
	return pos, dels
}

func invoice(invoiceNumber, vendor, poNumber string, qty, price float64) model.InvoiceRecord {
	return model.InvoiceRecord{
		InvoiceNumber: invoiceNumber,
		VendorName:    vendor,
		PONumber:      poNumber,
		LineItems: []model.LineItem{
			{Description: "Widget", Quantity: qty, UnitPrice: price, Total: qty * price},
		},
	}
}

func TestEngine_Validate(t *testing.T) {
	pos, dels := loadCatalogs(t)
	engine := NewEngine(DefaultTolerances())

	tests := []struct {
		name              string
		inv               model.InvoiceRecord
		wantStatus        model.ValidationStatus
		wantDiscrepancies int
		wantDelivery      bool
	}{
		{
			name:         "exact match passes",
			inv:          invoice("INV-1001", "Acme Industrial", "PO-2201", 10, 4.50),
			wantStatus:   model.StatusPassed,
			wantDelivery: true,
		},
		{
			name:         "variance within tolerance passes",
			inv:          invoice("INV-1001", "Acme Industrial", "PO-2201", 10.1, 4.60), // 1% qty, ~2.2% price
			wantStatus:   model.StatusPassed,
			wantDelivery: true,
		},
		{
			name:         "vendor name match is case-insensitive",
			inv:          invoice("INV-1001", "  acme industrial ", "PO-2201", 10, 4.50),
			wantStatus:   model.StatusPassed,
			wantDelivery: true,
		},
		{
			name:              "price variance beyond tolerance fails",
			inv:               invoice("INV-1001", "Acme Industrial", "PO-2201", 10, 5.00), // ~11.1%
			wantStatus:        model.StatusFailed,
			wantDiscrepancies: 1,
			wantDelivery:      true,
		},
		{
			name:              "quantity variance beyond tolerance fails",
			inv:               invoice("INV-1001", "Acme Industrial", "PO-2201", 11, 4.50), // 10%
			wantStatus:        model.StatusFailed,
			wantDiscrepancies: 1,
			wantDelivery:      true,
		},
		{
			name:              "vendor mismatch fails under blocking policy",
			inv:               invoice("INV-1001", "Wrong Vendor Ltd", "PO-2201", 10, 4.50),
			wantStatus:        model.StatusFailed,
			wantDiscrepancies: 1,
			wantDelivery:      true,
		},
		{
			name:              "pending delivery is not confirmed",
			inv:               invoice("INV-1002", "Acme Industrial", "PO-2201", 10, 4.50),
			wantStatus:        model.StatusPassed,
			wantDiscrepancies: 0,
			wantDelivery:      false,
		},
		{
			name:         "missing receipt is not confirmed",
			inv:          invoice("INV-1003", "Acme Industrial", "PO-2201", 10, 4.50),
			wantStatus:   model.StatusPassed,
			wantDelivery: false,
		},
		{
			name:       "unknown po_number is PO_NOT_FOUND",
			inv:        invoice("INV-1001", "Acme Industrial", "PO-9999", 10, 4.50),
			wantStatus: model.StatusPONotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Validate(tt.inv, pos, dels)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Len(t, res.Discrepancies, tt.wantDiscrepancies)
			assert.Equal(t, tt.wantDelivery, res.DeliveryConfirmed)
			assert.NotNil(t, res.Discrepancies)
		})
	}
}

func TestEngine_Validate_Errors(t *testing.T) {
	pos, dels := loadCatalogs(t)
	engine := NewEngine(DefaultTolerances())

	t.Run("duplicate po_number is ambiguous", func(t *testing.T) {
		_, err := engine.Validate(invoice("INV-2001", "Globex Corp", "PO-2202", 5, 100), pos, dels)
		var ambErr *AmbiguousMatchError
		require.ErrorAs(t, err, &ambErr)
		assert.Equal(t, "PO-2202", ambErr.PONumber)
		assert.Equal(t, 2, ambErr.Matches)
	})

	t.Run("malformed catalog row is a data error", func(t *testing.T) {
		_, err := engine.Validate(invoice("INV-2002", "Initech", "PO-2203", 2, 12), pos, dels)
		var dataErr *DataError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, "purchase_order", dataErr.Field)
		assert.ErrorContains(t, err, "non-numeric quantity")
	})

	t.Run("zero po quantity is a data error", func(t *testing.T) {
		_, err := engine.Validate(invoice("INV-2003", "Hooli", "PO-2204", 1, 250), pos, dels)
		var dataErr *DataError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, "quantity", dataErr.Field)
	})

	t.Run("non-finite invoice value is a data error", func(t *testing.T) {
		inv := invoice("INV-2004", "Acme Industrial", "PO-2201", 10, 4.50)
		inv.LineItems[0].Quantity = math.NaN()
		_, err := engine.Validate(inv, pos, dels)
		var dataErr *DataError
		require.ErrorAs(t, err, &dataErr)
	})
}

func TestEngine_Validate_VendorPolicy(t *testing.T) {
	pos, dels := loadCatalogs(t)
	inv := invoice("INV-1001", "Wrong Vendor Ltd", "PO-2201", 10, 4.50)

	t.Run("blocking policy fails the invoice", func(t *testing.T) {
		engine := NewEngine(Tolerances{PricePercent: 5, QuantityPercent: 2, VendorMismatchBlocks: true})
		res, err := engine.Validate(inv, pos, dels)
		require.NoError(t, err)
		assert.Equal(t, model.StatusFailed, res.Status)
		require.Len(t, res.Discrepancies, 1)
		assert.True(t, res.Discrepancies[0].Blocking)
	})

	t.Run("advisory policy records a non-blocking discrepancy", func(t *testing.T) {
		engine := NewEngine(Tolerances{PricePercent: 5, QuantityPercent: 2, VendorMismatchBlocks: false})
		res, err := engine.Validate(inv, pos, dels)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPassed, res.Status)
		require.Len(t, res.Discrepancies, 1)
		assert.Equal(t, "vendor_name", res.Discrepancies[0].Field)
		assert.False(t, res.Discrepancies[0].Blocking)
	})
}

func TestEngine_Validate_MultiLineFieldNames(t *testing.T) {
	pos, dels := loadCatalogs(t)
	engine := NewEngine(DefaultTolerances())

	inv := model.InvoiceRecord{
		InvoiceNumber: "INV-3001",
		VendorName:    "Acme Industrial",
		PONumber:      "PO-2201",
		LineItems: []model.LineItem{
			{Description: "Widget", Quantity: 10, UnitPrice: 4.50, Total: 45},
			{Description: "Widget", Quantity: 10, UnitPrice: 9.00, Total: 90},
		},
	}

	res, err := engine.Validate(inv, pos, dels)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, res.Status)
	require.Len(t, res.Discrepancies, 1)
	assert.Equal(t, "line_2.unit_price", res.Discrepancies[0].Field)
	assert.InDelta(t, 100.0, res.Discrepancies[0].VariancePercent, 0.001)
	assert.Equal(t, "9", res.Discrepancies[0].InvoiceValue)
	assert.Equal(t, "4.5", res.Discrepancies[0].POValue)
}

// Validation is pure: the same inputs always produce the same result.
func TestEngine_Validate_Idempotent(t *testing.T) {
	pos, dels := loadCatalogs(t)
	engine := NewEngine(DefaultTolerances())
	inv := invoice("INV-1001", "Acme Industrial", "PO-2201", 10, 5.00)

	first, err := engine.Validate(inv, pos, dels)
	require.NoError(t, err)
	second, err := engine.Validate(inv, pos, dels)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
