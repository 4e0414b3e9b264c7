package middleware

import (
	"agora/database"
	"agora/models"
	"agora/workflow"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly ensures the caller holds the ADMIN or OWNER role. The role is
// checked against the users table, not the token, so demotions apply
// immediately.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND role IN ?", userID, []string{models.RoleAdmin, models.RoleOwner}).
		First(&user).Error
	if err != nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}

	c.Locals("userRole", user.Role)
	return c.Next()
}

// OwnerOnly ensures the caller holds the OWNER role
func OwnerOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
	}

	var user models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = false AND role = ?", userID, models.RoleOwner).
		First(&user).Error
	if err != nil {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access Denied!", nil)
	}

	c.Locals("userRole", user.Role)
	return c.Next()
}

// WorkflowErrorResponse maps a workflow failure kind to an HTTP status
func WorkflowErrorResponse(c *fiber.Ctx, err error) error {
	switch workflow.KindOf(err) {
	case workflow.KindValidation:
		return JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case workflow.KindAuthorization:
		return JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case workflow.KindState:
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	case workflow.KindDuplicate:
		return JsonResponse(c, fiber.StatusConflict, false, err.Error(), nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again!", nil)
	}
}
