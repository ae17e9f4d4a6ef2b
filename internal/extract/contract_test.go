package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		inv, err := Decode([]byte(`{
			"invoice_number": "INV-1001",
			"vendor_name": "Acme Industrial",
			"po_number": "PO-2201",
			"line_items": [
				{"description": "Widget", "quantity": 10, "unit_price": 4.5, "total": 45}
			]
		}`))
		require.NoError(t, err)
		assert.Equal(t, "INV-1001", inv.InvoiceNumber)
		assert.Equal(t, "PO-2201", inv.PONumber)
		require.Len(t, inv.LineItems, 1)
		assert.Equal(t, 45.0, inv.TotalAmount())
		// ExtractedAt is stamped when the collaborator omitted it
		assert.False(t, inv.ExtractedAt.IsZero())
	})

	t.Run("extracted_at is preserved when present", func(t *testing.T) {
		inv, err := Decode([]byte(`{
			"invoice_number": "INV-1001",
			"vendor_name": "Acme Industrial",
			"po_number": "PO-2201",
			"extracted_at": "2026-01-15T10:00:00Z",
			"line_items": [
				{"description": "Widget", "quantity": 10, "unit_price": 4.5, "total": 45}
			]
		}`))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), inv.ExtractedAt)
	})

	rejected := []struct {
		name    string
		payload string
	}{
		{"not json", `{"invoice_number": `},
		{"missing po_number", `{"invoice_number": "INV-1", "vendor_name": "A", "line_items": [{"description": "", "quantity": 1, "unit_price": 1, "total": 1}]}`},
		{"empty invoice_number", `{"invoice_number": "", "vendor_name": "A", "po_number": "PO-1", "line_items": [{"description": "", "quantity": 1, "unit_price": 1, "total": 1}]}`},
		{"empty line_items", `{"invoice_number": "INV-1", "vendor_name": "A", "po_number": "PO-1", "line_items": []}`},
		{"string quantity", `{"invoice_number": "INV-1", "vendor_name": "A", "po_number": "PO-1", "line_items": [{"description": "", "quantity": "10", "unit_price": 1, "total": 1}]}`},
		{"missing unit_price", `{"invoice_number": "INV-1", "vendor_name": "A", "po_number": "PO-1", "line_items": [{"description": "", "quantity": 1, "total": 1}]}`},
		{"unknown top-level field", `{"invoice_number": "INV-1", "vendor_name": "A", "po_number": "PO-1", "surprise": true, "line_items": [{"description": "", "quantity": 1, "unit_price": 1, "total": 1}]}`},
	}

	for _, tt := range rejected {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrContract)
		})
	}
}
