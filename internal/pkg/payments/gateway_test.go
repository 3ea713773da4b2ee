package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_456",
				"metadata": {"order_id": "7", "company_id": "3"},
				"payment_intent": "pi_789",
				"amount_total": 49900,
				"currency": "eur"
			}
		}
	}`)

	event, err := ParseWebhookEvent(body)
	require.NoError(t, err)

	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, EventCheckoutCompleted, event.Type)
	assert.Equal(t, "cs_456", event.Data.Object.ID)
	assert.Equal(t, "7", event.Data.Object.Metadata[MetadataOrderID])
	assert.Equal(t, "pi_789", event.Data.Object.PaymentIntent)
	assert.Equal(t, int64(49900), event.Data.Object.AmountTotal)
	assert.Equal(t, "eur", event.Data.Object.Currency)
}

func TestParseWebhookEventInvalidJSON(t *testing.T) {
	_, err := ParseWebhookEvent([]byte("{not json"))
	assert.Error(t, err)
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected int64
	}{
		{"Whole amount", 499.0, 49900},
		{"Cents", 19.99, 1999},
		{"Rounding up", 10.005, 1001},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toMinorUnits(tt.amount))
		})
	}
}

func TestStripeGatewayMockMode(t *testing.T) {
	g := &StripeGateway{mockMode: true}

	ref, err := g.CreateCheckoutSession(context.Background(), CheckoutInput{
		OrderID:     7,
		CompanyID:   3,
		OrderNumber: "ORD-20260831-ABC123",
		Description: "Pro Diagnostics 12 months",
		Amount:      499.0,
		Currency:    "EUR",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ref.SessionID)
	assert.Contains(t, ref.SessionID, "cs_mock_")
	assert.Contains(t, ref.URL, ref.SessionID)
}
