package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/apperr"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
)

// HandlePaymentWebhook ingests gateway events. Signature verification runs in
// middleware before this handler. Each event is recorded exactly once; a
// redelivered event ID answers 200 so the gateway stops retrying, without any
// second processing.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	event, err := payments.ParseWebhookEvent(c.Body())
	if err != nil || event.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Malformed webhook payload"})
	}

	if event.Type != payments.EventCheckoutCompleted {
		log.Infof("[Webhook] Ignoring event %s of type %s", event.ID, event.Type)
		return c.JSON(fiber.Map{"message": "ignored"})
	}

	if err := licensingService.RecordIncomingEvent(c.Context(), event); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			log.Infof("[Webhook] Duplicate event %s ignored", event.ID)
			return c.JSON(fiber.Map{"message": "duplicate ignored"})
		}
		log.Errorf("[Webhook] Failed to record event %s: %v", event.ID, err)
		return apperr.Respond(c, err)
	}

	// The job row is committed; this only shortens pickup latency.
	queueManager.Queue().Notify(jobqueue.JobTypePaymentProcess)

	return c.JSON(fiber.Map{"message": "accepted"})
}
