package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceRecord_TotalAmount(t *testing.T) {
	inv := InvoiceRecord{
		LineItems: []LineItem{
			{Description: "Widget", Quantity: 10, UnitPrice: 4.5, Total: 45},
			{Description: "Gadget", Quantity: 2, UnitPrice: 100, Total: 200},
		},
	}
	assert.Equal(t, 245.0, inv.TotalAmount())

	assert.Zero(t, InvoiceRecord{}.TotalAmount())
}

func TestParseDeliveryStatus(t *testing.T) {
	assert.Equal(t, DeliveryDelivered, ParseDeliveryStatus("DELIVERED"))
	assert.Equal(t, DeliveryPending, ParseDeliveryStatus("PENDING"))
	assert.Equal(t, DeliveryOther, ParseDeliveryStatus("IN TRANSIT"))
	assert.Equal(t, DeliveryOther, ParseDeliveryStatus(""))
}
