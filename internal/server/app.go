package server

import (
	"log"

	"portfolio-service/internal/config"
	"portfolio-service/internal/handlers"
	"portfolio-service/internal/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const accessLogFormat = "[${time}] ${respHeader:X-Request-ID} ${ip} ${status} - ${latency} ${method} ${path} ${error}\n"

// NewApp builds the HTTP surface: the /api routes, liveness, metrics and the static
// frontend. limiter may be nil.
func NewApp(cfg *config.Config, profileHandler *handlers.ProfileHandler, limiter *middleware.RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Server.ServiceName,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Output: log.Writer(),
		Format: accessLogFormat,
	}))
	// CSP stays off so the page can load its CDN stylesheets.
	app.Use(helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions},
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Portfolio Service is healthy")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	if limiter != nil {
		api.Use(limiter.Handler())
	}
	profileHandler.RegisterRoutes(api)

	app.Get("/*", static.New(cfg.Server.StaticDir))

	return app
}
