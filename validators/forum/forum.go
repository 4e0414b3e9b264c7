package forumValidator

import (
	"agora/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateThread validates thread creation request
func CreateThread() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title"`
			Content    string `json:"content"`
			CategoryID uint   `json:"categoryId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Thread content is required!"
		}
		if reqData.CategoryID == 0 {
			errors["categoryId"] = "Category is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateThread", reqData)
		return c.Next()
	}
}

// CreatePost validates reply creation request
func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Post content is required!", nil)
		}

		c.Locals("validatedCreatePost", reqData)
		return c.Next()
	}
}
