// Package controllers contains the HTTP handlers of the public API.
package controllers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// LicensingService is the slice of the licensing service the handlers use.
// Satisfied by *licensing.Service; tests substitute fakes.
type LicensingService interface {
	CreateCheckoutSession(ctx context.Context, orderID uint, uc usercontext.UserContext) (*payments.CheckoutSessionRef, error)
	RecordIncomingEvent(ctx context.Context, event *payments.WebhookEvent) error
}

var (
	licensingService LicensingService
	queueManager     *jobqueue.Manager
)

// Initialize injects the service layer dependencies used by the handlers.
// Must be called once during startup, before routes are registered.
func Initialize(svc LicensingService, qm *jobqueue.Manager) {
	licensingService = svc
	queueManager = qm
}

// currentCompanyID returns the tenant of the authenticated request.
func currentCompanyID(c *fiber.Ctx) uint {
	return usercontext.GetCompanyID(c)
}

// parsePagination reads page/page_size query params into offset and limit.
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}
