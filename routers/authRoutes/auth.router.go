package authRoutes

import (
	authController "agora/controllers/auth"
	"agora/middleware"
	authValidator "agora/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/login-history", middleware.JWTMiddleware, authController.LoginHistory)
}
