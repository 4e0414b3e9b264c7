package dealRoutes

import (
	dealController "agora/controllers/deal"
	"agora/middleware"
	dealValidator "agora/validators/deal"

	"github.com/gofiber/fiber/v2"
)

// SetupDealRoutes sets up the deal negotiation workflow routes
func SetupDealRoutes(app *fiber.App) {
	dealGroup := app.Group("/deal")

	dealGroup.Post("/propose", dealValidator.ProposeDeal(), middleware.JWTMiddleware, dealController.ProposeDeal)
	dealGroup.Get("/my-deals", middleware.JWTMiddleware, dealController.MyDeals)
	dealGroup.Post("/upload-images", middleware.JWTMiddleware, dealController.UploadDealImages)

	// Review flags
	dealGroup.Post("/reviews/:id/flag", middleware.JWTMiddleware, dealController.FlagReview)

	// Dynamic ID routes (MUST come AFTER specific routes)
	dealGroup.Get("/:id", middleware.JWTMiddleware, dealController.GetDeal)
	dealGroup.Post("/:id/respond", dealValidator.Respond(), middleware.JWTMiddleware, dealController.Respond)
	dealGroup.Post("/:id/cancel", middleware.JWTMiddleware, dealController.CancelDeal)
	dealGroup.Post("/:id/review", dealValidator.SubmitReview(), middleware.JWTMiddleware, dealController.SubmitReview)
}
