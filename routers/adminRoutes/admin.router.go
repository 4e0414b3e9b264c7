package adminRoutes

import (
	adminController "agora/controllers/admin"
	"agora/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up moderation and site administration routes
func SetupAdminRoutes(app *fiber.App) {
	// User-facing request submission
	app.Post("/verification/request", middleware.JWTMiddleware, adminController.SubmitVerificationRequest)
	app.Post("/admin-request", middleware.JWTMiddleware, adminController.SubmitAdminRequest)

	// Public site settings
	app.Get("/site-settings", adminController.GetSiteSettings)

	adminGroup := app.Group("/admin")

	// Verification moderation
	adminGroup.Get("/verifications", middleware.JWTMiddleware, middleware.AdminOnly, adminController.ListVerificationRequests)
	adminGroup.Post("/verifications/:id/resolve", middleware.JWTMiddleware, middleware.AdminOnly, adminController.ResolveVerificationRequest)

	// Review assessments
	adminGroup.Get("/assessments", middleware.JWTMiddleware, middleware.AdminOnly, adminController.PendingAssessments)
	adminGroup.Post("/assessments/:id/resolve", middleware.JWTMiddleware, middleware.AdminOnly, adminController.ResolveAssessment)

	// Deal oversight
	adminGroup.Get("/deals", middleware.JWTMiddleware, middleware.AdminOnly, adminController.ListAllDeals)

	// User management
	adminGroup.Post("/users/:id/ban", middleware.JWTMiddleware, middleware.AdminOnly, adminController.BanUser)

	// Owner-only surface
	adminGroup.Get("/admin-requests", middleware.JWTMiddleware, middleware.OwnerOnly, adminController.ListAdminRequests)
	adminGroup.Post("/admin-requests/:id/resolve", middleware.JWTMiddleware, middleware.OwnerOnly, adminController.ResolveAdminRequest)
	adminGroup.Put("/site-settings", middleware.JWTMiddleware, middleware.OwnerOnly, adminController.UpdateSiteSettings)
}
