package forumRoutes

import (
	forumController "agora/controllers/forum"
	"agora/middleware"
	forumValidator "agora/validators/forum"

	"github.com/gofiber/fiber/v2"
)

// SetupForumRoutes sets up category, thread, post, search and trending routes
func SetupForumRoutes(app *fiber.App) {
	forumGroup := app.Group("/forum")

	forumGroup.Get("/categories", forumController.ListCategories)
	forumGroup.Get("/search", forumController.Search)
	forumGroup.Get("/trending", forumController.Trending)

	// Threads (specific routes MUST come before /:id)
	forumGroup.Post("/threads", forumValidator.CreateThread(), middleware.JWTMiddleware, forumController.CreateThread)
	forumGroup.Get("/threads", forumController.ListThreads)
	forumGroup.Get("/threads/:id", forumController.GetThread)
	forumGroup.Put("/threads/:id", middleware.JWTMiddleware, forumController.UpdateThread)
	forumGroup.Put("/threads/:id/moderate", middleware.JWTMiddleware, middleware.AdminOnly, forumController.ModerateThread)

	// Posts
	forumGroup.Post("/threads/:id/posts", forumValidator.CreatePost(), middleware.JWTMiddleware, forumController.CreatePost)
	forumGroup.Get("/threads/:id/posts", forumController.ListPosts)
	forumGroup.Put("/posts/:id", middleware.JWTMiddleware, forumController.UpdatePost)
	forumGroup.Delete("/posts/:id", middleware.JWTMiddleware, forumController.DeletePost)
}
