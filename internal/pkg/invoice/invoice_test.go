package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	pdf, err := Generate(Data{
		InvoiceNumber: "INV-ORD-20260831-ABC123",
		IssuedAt:      time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
		CompanyName:   "Garage Muller GmbH",
		CompanyEmail:  "billing@garage-muller.example",
		OrderNumber:   "ORD-20260831-ABC123",
		OfferName:     "Pro Diagnostics",
		Amount:        499.00,
		Currency:      "EUR",
		LicenseExpiry: time.Date(2027, 8, 31, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(pdf), 500)
}

func TestNewInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-ORD-20260831-ABC123", NewInvoiceNumber("ORD-20260831-ABC123"))
}
