package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/apperr"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

type createCheckoutRequest struct {
	OrderID uint `json:"order_id"`
}

// HandleCreateCheckoutSession starts a hosted checkout for a pending order.
// Restricted to company admins; the service enforces role and tenant.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req createCheckoutRequest
	if err := c.BodyParser(&req); err != nil || req.OrderID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "order_id is required"})
	}

	ref, err := licensingService.CreateCheckoutSession(c.Context(), req.OrderID, usercontext.GetUserContext(c))
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.JSON(ref)
}
