package agentRoutes

import (
	agentController "agora/controllers/agent"
	"agora/middleware"
	agentValidator "agora/validators/agent"

	"github.com/gofiber/fiber/v2"
)

// SetupAgentRoutes sets up agent directory routes
func SetupAgentRoutes(app *fiber.App) {
	agentGroup := app.Group("/agent")

	agentGroup.Post("/create", agentValidator.CreateAgent(), middleware.JWTMiddleware, agentController.CreateAgent)
	agentGroup.Get("/list", agentController.ListAgents)

	// Dynamic ID routes (MUST come AFTER specific routes)
	agentGroup.Get("/:id", agentController.GetAgent)
	agentGroup.Put("/:id", middleware.JWTMiddleware, agentController.UpdateAgent)
	agentGroup.Delete("/:id", middleware.JWTMiddleware, agentController.DeleteAgent)
}
