package userRoutes

import (
	dealController "agora/controllers/deal"
	userController "agora/controllers/userControllers"
	"agora/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware, userController.GetMyProfile)
	userGroup.Put("/me", middleware.JWTMiddleware, userController.UpdateProfile)
	userGroup.Post("/me/avatar", middleware.JWTMiddleware, userController.UploadAvatar)

	// Public profile and its received reviews (MUST come after /me)
	userGroup.Get("/:id", userController.GetPublicProfile)
	userGroup.Get("/:id/reviews", dealController.UserReviews)
}
