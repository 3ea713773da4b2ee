package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AutoDiagCloud/LicenseHub/app/controllers"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/middleware"
)

type WebhookRouter struct {
}

func NewWebhookRouter() *WebhookRouter {
	return &WebhookRouter{}
}

func (h WebhookRouter) InstallRouter(app *fiber.App) {
	secret := env.GetEnv("PAYMENT_WEBHOOK_SECRET", "")
	app.Post("/webhooks/payment",
		middleware.VerifyWebhookSignature(secret),
		controllers.HandlePaymentWebhook,
	)
}
