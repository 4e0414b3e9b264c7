package notificationRoutes

import (
	notificationController "agora/controllers/notification"
	"agora/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the notification feed routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification")

	notificationGroup.Get("/list", middleware.JWTMiddleware, notificationController.MyNotifications)
	notificationGroup.Get("/unread-count", middleware.JWTMiddleware, notificationController.UnreadCount)
	notificationGroup.Post("/read-all", middleware.JWTMiddleware, notificationController.MarkAllRead)
	notificationGroup.Post("/:id/read", middleware.JWTMiddleware, notificationController.MarkRead)
}
