package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
)

// WebhookSignatureHeader carries the gateway's timestamped HMAC signature.
const WebhookSignatureHeader = "X-Webhook-Signature"

// VerifyWebhookSignature rejects webhook posts whose signature does not match
// the shared secret. Runs before the body is interpreted; an unsigned or
// tampered event never reaches the event store.
func VerifyWebhookSignature(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(WebhookSignatureHeader)
		if !payments.VerifyWebhookSignature(c.Body(), header, secret, time.Now(), payments.DefaultSignatureTolerance) {
			log.Errorf("[Webhook] Signature verification failed from %s", c.IP())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature", "message": "Webhook signature verification failed"})
		}
		return c.Next()
	}
}
