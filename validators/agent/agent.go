package agentValidator

import (
	"agora/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateAgent validates agent listing creation request
func CreateAgent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Location         string   `json:"currentLocation"`
			Height           string   `json:"height"`
			Weight           string   `json:"weight"`
			Services         []string `json:"services"`
			Tags             []string `json:"tags"`
			PricingShortTime string   `json:"pricingShortTime"`
			PricingLongTime  string   `json:"pricingLongTime"`
			PricingOvernight string   `json:"pricingOvernight"`
			PricingPrivate   string   `json:"pricingPrivate"`
			Description      string   `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Location) == "" {
			errors["currentLocation"] = "Location is required!"
		}
		if len(reqData.Services) == 0 {
			errors["services"] = "At least one service is required!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateAgent", reqData)
		return c.Next()
	}
}
