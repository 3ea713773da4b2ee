package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

// HandleListOffers returns the purchasable license offers.
func HandleListOffers(c *fiber.Ctx) error {
	offers, err := repository.GetGlobalRepositories().Offer.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load offers"})
	}
	return c.JSON(fiber.Map{"offers": offers})
}

type createOfferRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	DurationMonths int     `json:"duration_months"`
	Active         *bool   `json:"active"`
}

// HandleCreateOffer creates a new license offer. Admin only.
func HandleCreateOffer(c *fiber.Ctx) error {
	var req createOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_body", "message": "Invalid request body"})
	}

	offer := models.Offer{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       strings.ToUpper(req.Currency),
		DurationMonths: req.DurationMonths,
		Active:         true,
	}
	if offer.Currency == "" {
		offer.Currency = "EUR"
	}
	if req.Active != nil {
		offer.Active = *req.Active
	}
	if err := offer.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	if err := repository.GetGlobalRepositories().Offer.Create(&offer); err != nil {
		log.Errorf("[OfferController] Failed to create offer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create offer"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"offer": offer})
}
