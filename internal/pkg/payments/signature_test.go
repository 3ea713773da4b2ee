package payments

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test_secret"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	t.Run("Valid signature passes", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		assert.True(t, VerifyWebhookSignature(payload, header, secret, now, DefaultSignatureTolerance))
	})

	t.Run("Tampered payload fails", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		tampered := []byte(`{"id":"evt_2","type":"checkout.session.completed"}`)
		assert.False(t, VerifyWebhookSignature(tampered, header, secret, now, DefaultSignatureTolerance))
	})

	t.Run("Wrong secret fails", func(t *testing.T) {
		header := SignWebhookPayload(payload, "whsec_other", now)
		assert.False(t, VerifyWebhookSignature(payload, header, secret, now, DefaultSignatureTolerance))
	})

	t.Run("Stale timestamp fails", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now.Add(-10*time.Minute))
		assert.False(t, VerifyWebhookSignature(payload, header, secret, now, DefaultSignatureTolerance))
	})

	t.Run("Malformed headers fail", func(t *testing.T) {
		for _, header := range []string{
			"",
			"garbage",
			"t=notanumber,v1=abc",
			"t=123",
			"v1=abc",
		} {
			assert.False(t, VerifyWebhookSignature(payload, header, secret, now, DefaultSignatureTolerance), "header %q", header)
		}
	})

	t.Run("Header format", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		assert.True(t, strings.HasPrefix(header, "t="), "got %s", header)
		assert.Contains(t, header, ",v1=")
	})
}
