package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"tutorhub_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain (recovery → cors → logger).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
