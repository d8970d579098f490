// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "tutorhub_backend/internals/features/users/auth/controller"
	"tutorhub_backend/internals/mailer"
	rateLimiter "tutorhub_backend/internals/middlewares"
	authMw "tutorhub_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, dispatcher mailer.Dispatcher) {
	authController := controller.NewAuthController(db, dispatcher)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)

	// 🔒 Protected
	protected := baseAuth.Group("", authMw.AuthMiddleware(db))
	protected.Post("/logout", authController.Logout)
	protected.Get("/me", authController.Me)
}
