package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Barkatzx/medicare-server/internal/config"
	"github.com/Barkatzx/medicare-server/internal/handlers"
	"github.com/Barkatzx/medicare-server/internal/middleware"
	"github.com/Barkatzx/medicare-server/internal/routes"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

// New initializes the Fiber application with middlewares and routes.
func New(cfg *config.Config, h *handlers.Handler, tokens *utils.TokenManager, limiter *middleware.RateLimiter, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	})

	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.Setup(app, h, tokens, limiter)

	return app
}
