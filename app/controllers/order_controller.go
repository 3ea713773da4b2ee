package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/AutoDiagCloud/LicenseHub/app/models"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

type createOrderRequest struct {
	OfferID uint `json:"offer_id"`
}

// HandleCreateOrder creates a pending order for one offer. The price is
// frozen onto the order at creation time.
func HandleCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil || req.OfferID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "offer_id is required"})
	}

	repos := repository.GetGlobalRepositories()
	offer, err := repos.Offer.GetByID(req.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Offer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load offer"})
	}
	if !offer.Active {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "offer_inactive", "message": "Offer is no longer available"})
	}

	order := &models.Order{
		CompanyID:   currentCompanyID(c),
		OfferID:     offer.ID,
		OrderNumber: models.NewOrderNumber(time.Now()),
		Amount:      offer.Price,
		Currency:    offer.Currency,
		Status:      models.OrderStatusPending,
	}
	if err := repos.Order.Create(order); err != nil {
		log.Errorf("[Order] Failed to create order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create order"})
	}

	log.Infof("[Order] Created order %s for company %d", order.OrderNumber, order.CompanyID)
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrder returns one order of the caller's company. Orders of other
// tenants read as not found.
func HandleGetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid order id"})
	}

	order, err := repository.GetGlobalRepositories().Order.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load order"})
	}
	if order.CompanyID != currentCompanyID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Order not found"})
	}

	return c.JSON(order)
}

// HandleListOrders returns the caller's company orders, newest first.
func HandleListOrders(c *fiber.Ctx) error {
	offset, limit := parsePagination(c)
	orders, err := repository.GetGlobalRepositories().Order.ListByCompany(currentCompanyID(c), offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load orders"})
	}
	return c.JSON(fiber.Map{"orders": orders})
}
