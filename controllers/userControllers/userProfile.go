package userController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"agora/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's own profile
func GetMyProfile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", user)
}

// GetPublicProfile returns another user's public profile
func GetPublicProfile(c *fiber.Ctx) error {
	userId := c.Params("id")

	var user models.User
	if err := database.Database.Db.
		Select("id, created_at, username, avatar_url, bio, role, post_count, reputation, is_verified, is_banned, honorable_title").
		Where("id = ? AND is_deleted = false", userId).
		First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", user)
}

// UpdateProfile updates the caller's bio and avatar
func UpdateProfile(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatarUrl"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Bio != nil {
		updates["bio"] = *reqData.Bio
	}
	if reqData.AvatarURL != nil {
		updates["avatar_url"] = *reqData.AvatarURL
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// UploadAvatar stores an avatar image and links it to the caller's profile
func UploadAvatar(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Avatar file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, "./public/uploads/avatars")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save avatar!", nil)
	}

	db := database.Database.Db
	if err := db.Model(&models.User{}).Where("id = ?", userId).
		Update("avatar_url", utils.GetFileURL(path)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update avatar!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Avatar updated successfully!", fiber.Map{
		"avatarUrl": utils.GetFileURL(path),
	})
}
