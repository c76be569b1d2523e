package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_TotalCents(t *testing.T) {
	inv := Invoice{
		Items: []InvoiceItem{
			{Quantity: 2, UnitAmountCents: 15000},
			{Quantity: 1, UnitAmountCents: 49900},
		},
	}
	assert.Equal(t, int64(79900), inv.TotalCents())

	assert.Equal(t, int64(0), Invoice{}.TotalCents())
}

func TestCreateInvoiceRequest_Validate(t *testing.T) {
	req := CreateInvoiceRequest{
		ClientID: "cl-1",
		Number:   "INV-2025-001",
		Items: []CreateInvoiceItemRequest{
			{Description: "SEO retainer", Quantity: 1, UnitAmountCents: 250000},
		},
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "USD", req.Currency)

	req.Currency = "eur"
	require.NoError(t, req.Validate())
	assert.Equal(t, "EUR", req.Currency)

	noItems := CreateInvoiceRequest{ClientID: "cl-1", Number: "INV-1"}
	assert.Error(t, noItems.Validate())

	badItem := CreateInvoiceRequest{
		ClientID: "cl-1",
		Number:   "INV-1",
		Items:    []CreateInvoiceItemRequest{{Description: "x", Quantity: 0}},
	}
	assert.Error(t, badItem.Validate())
}
