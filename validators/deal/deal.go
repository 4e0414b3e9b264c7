package dealValidator

import (
	"agora/middleware"
	"agora/models/deal"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ProposeDeal validates a deal proposal request
func ProposeDeal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RecipientID uint     `json:"recipientId" validate:"required"`
			Title       string   `json:"title" validate:"required,min=3,max=200"`
			Description string   `json:"description" validate:"required"`
			Images      []string `json:"images" validate:"max=5"`
			DealType    string   `json:"dealType" validate:"omitempty,oneof=HIRE_AGENT TRANSACTION OTHER"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "RecipientID":
					errors["recipientId"] = "Recipient is required!"
				case "Title":
					errors["title"] = "Title must be 3-200 characters!"
				case "Description":
					errors["description"] = "Description is required!"
				case "Images":
					errors["images"] = "A deal may carry at most 5 images!"
				case "DealType":
					errors["dealType"] = "Deal type must be HIRE_AGENT, TRANSACTION, or OTHER!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProposeDeal", reqData)
		return c.Next()
	}
}

// Respond validates a deal response request
func Respond() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content      string   `json:"content"`
			Images       []string `json:"images"`
			ResponseType string   `json:"responseType"`
			IsApproved   *bool    `json:"isApproved"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		validTypes := map[string]bool{
			string(deal.ResponseRecipient):     true,
			string(deal.ResponseAdminApproval): true,
		}
		if _, ok := validTypes[reqData.ResponseType]; !ok {
			errors["responseType"] = "Response type must be RECIPIENT_RESPONSE or ADMIN_APPROVAL!"
		}

		if reqData.ResponseType == string(deal.ResponseRecipient) && reqData.Content == "" {
			errors["content"] = "Response content is required!"
		}

		if len(reqData.Images) > deal.MaxImagesPerDeal {
			errors["images"] = "A response may carry at most 5 images!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRespond", reqData)
		return c.Next()
	}
}

// SubmitReview validates a deal review request
func SubmitReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RevieweeID uint   `json:"revieweeId"`
			Rating     int    `json:"rating"`
			ReviewText string `json:"reviewText"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RevieweeID == 0 {
			errors["revieweeId"] = "Reviewee is required!"
		}
		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitReview", reqData)
		return c.Next()
	}
}
