package notificationController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MyNotifications returns the caller's notification feed, newest first
func MyNotifications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	unreadOnly := c.QueryBool("unread", false)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_deleted = false", userId)
	if unreadOnly {
		query = query.Where("is_read = false")
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", fiber.Map{
		"notifications": notifications,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UnreadCount returns the number of unread notifications
func UnreadCount(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var count int64
	database.Database.Db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false AND is_deleted = false", userId).
		Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched!", fiber.Map{
		"unread": count,
	})
}

// MarkRead marks one notification as read
func MarkRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	notificationId, err := strconv.Atoi(c.Params("id"))
	if err != nil || notificationId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationId, userId).
		Update("is_read", true)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}

// MarkAllRead marks every notification of the caller as read
func MarkAllRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	if err := database.Database.Db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false", userId).
		Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", nil)
}
