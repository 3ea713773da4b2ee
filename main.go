package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/AutoDiagCloud/LicenseHub/app/controllers"
	"github.com/AutoDiagCloud/LicenseHub/app/repository"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/cache"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/database"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/docstore"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/jobqueue"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/licensing"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/mail"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/notify"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/payments"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/router"
	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/worker"
)

func main() {
	app, manager := NewApplication()

	manager.Start()
	defer manager.Stop()

	// Graceful shutdown on SIGINT/SIGTERM.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}

// NewApplication wires the full service: DB, cache, repositories, payment
// gateway, job queue and HTTP routes.
func NewApplication() (*fiber.App, *jobqueue.Manager) {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	repository.InitializeFactory(db)
	repos := repository.GetGlobalRepositories()

	gateway, err := payments.NewStripeGatewayFromEnv()
	if err != nil {
		log.Fatalf("payment gateway setup failed: %v", err)
	}

	licensingService := licensing.NewService(db, repos, gateway)

	mailer, err := mail.NewSMTPMailerFromEnv()
	if err != nil {
		log.Fatalf("mailer setup failed: %v", err)
	}

	var store docstore.Store
	if cfg := docstore.LoadConfigFromEnv(); cfg.IsEnabled() {
		client, err := docstore.NewClient(cfg)
		if err != nil {
			log.Fatalf("document store setup failed: %v", err)
		}
		store = client
	} else {
		log.Println("document store disabled, invoices will not be archived")
	}

	dispatcher := notify.NewDispatcher(repos, mailer, store)

	queue := jobqueue.NewQueue(repos.Job, cache.GetClient())
	worker.RegisterHandlers(queue, licensingService, dispatcher)
	manager := jobqueue.NewManager(queue, repos.Job)

	controllers.Initialize(licensingService, manager)

	app := fiber.New(fiber.Config{
		AppName: "LicenseHub",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())
	app.Get("/up", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	router.InstallRouter(app, repos)

	return app, manager
}
