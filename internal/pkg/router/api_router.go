package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/AutoDiagCloud/LicenseHub/app/controllers"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/middleware"
)

type ApiRouter struct {
	repos *repository.Repositories
}

func NewApiRouter(repos *repository.Repositories) *ApiRouter {
	return &ApiRouter{repos: repos}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Storage:    newLimiterStorage(),
	}))

	v1 := api.Group("/v1")

	// Public: tenant self-registration and catalog browsing.
	v1.Post("/companies/register", controllers.HandleRegisterCompany)
	v1.Get("/offers", controllers.HandleListOffers)

	// Everything below requires a bearer API token.
	auth := v1.Group("", middleware.APITokenAuth(h.repos))

	auth.Get("/me", controllers.HandleGetMe)
	auth.Get("/company", controllers.HandleGetCompany)

	auth.Post("/orders", controllers.HandleCreateOrder)
	auth.Get("/orders", controllers.HandleListOrders)
	auth.Get("/orders/:id", controllers.HandleGetOrder)

	auth.Get("/licenses", controllers.HandleListLicenses)
	auth.Get("/licenses/:id", controllers.HandleGetLicense)

	auth.Post("/payments/create-checkout-session", controllers.HandleCreateCheckoutSession)

	// Admin-only management endpoints.
	admin := auth.Group("/admin", middleware.RequireAdmin())
	admin.Post("/users", controllers.HandleCreateUser)
	admin.Get("/users", controllers.HandleListUsers)
	admin.Post("/offers", controllers.HandleCreateOffer)
	admin.Get("/queue/stats", controllers.HandleQueueStats)
}

// newLimiterStorage backs the rate limiter with Redis so limits hold across
// instances.
func newLimiterStorage() fiber.Storage {
	port, err := strconv.Atoi(env.GetEnv("REDIS_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	return redis.New(redis.Config{
		Host:     env.GetEnv("REDIS_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("REDIS_PASSWORD", ""),
		Database: 1,
	})
}
