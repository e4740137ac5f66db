package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quizpulse/quizpulse-api/internal/config"
	"github.com/quizpulse/quizpulse-api/internal/handler"
	"github.com/quizpulse/quizpulse-api/internal/utils"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	FeedbackHandler *handler.FeedbackHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "Welcome to the Quiz App!", nil)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api)
	}
}
