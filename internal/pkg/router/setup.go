package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AutoDiagCloud/LicenseHub/app/repository"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter registers all route groups. The webhook router goes first so
// gateway posts never pass through the API auth stack.
func InstallRouter(app *fiber.App, repos *repository.Repositories) {
	setup(app, NewWebhookRouter(), NewApiRouter(repos))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
