package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// SetupMiddlewares wires the base middleware chain. Auth and role gates are
// attached per route group in internals/route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.New(logger.Config{
		Format: "[HTTP] ${time} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(GlobalRateLimiter())
}
