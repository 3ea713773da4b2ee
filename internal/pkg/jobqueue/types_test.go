package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
)

func TestPaymentJobPayloadRoundTrip(t *testing.T) {
	payload := &PaymentJobPayload{
		EventID:   "evt_123",
		EventType: payments.EventCheckoutCompleted,
		Session: payments.SessionObject{
			ID:            "cs_456",
			Metadata:      map[string]string{payments.MetadataOrderID: "7"},
			PaymentIntent: "pi_789",
			AmountTotal:   49900,
			Currency:      "eur",
		},
	}

	encoded, err := payload.Encode()
	require.NoError(t, err)

	decoded, err := DecodePaymentJobPayload(encoded)
	require.NoError(t, err)

	assert.Equal(t, payload.EventID, decoded.EventID)
	assert.Equal(t, payload.Session.ID, decoded.Session.ID)
	assert.Equal(t, payload.Session.AmountTotal, decoded.Session.AmountTotal)
	assert.Equal(t, "7", decoded.Session.Metadata[payments.MetadataOrderID])
}

func TestDecodePaymentJobPayloadErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Invalid JSON", "{broken"},
		{"Missing event id", `{"event_type":"checkout.session.completed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePaymentJobPayload(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestNotifyJobPayloadRoundTrip(t *testing.T) {
	payload := &NotifyJobPayload{OrderID: 7, CompanyID: 3, OfferID: 2, LicenseID: 11}

	encoded, err := payload.Encode()
	require.NoError(t, err)

	decoded, err := DecodeNotifyJobPayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecodeNotifyJobPayloadErrors(t *testing.T) {
	_, err := DecodeNotifyJobPayload(`{"order_id":0,"license_id":5}`)
	assert.Error(t, err)

	_, err = DecodeNotifyJobPayload(`{"order_id":5,"license_id":0}`)
	assert.Error(t, err)
}
