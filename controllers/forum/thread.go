package forumController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListCategories returns all categories in display order
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.
		Where("is_deleted = false").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}

// CreateThread opens a new thread in a category
func CreateThread(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateThread").(*struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		CategoryID uint   `json:"categoryId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = false", reqData.CategoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	thread := models.Thread{
		Title:      reqData.Title,
		Content:    reqData.Content,
		AuthorID:   userId,
		CategoryID: reqData.CategoryID,
	}
	if err := db.Create(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thread created successfully!", thread)
}

// ListThreads returns threads, pinned first, optionally filtered by category
func ListThreads(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	categoryId := c.QueryInt("categoryId", 0)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Thread{}).Where("is_deleted = false")
	if categoryId > 0 {
		query = query.Where("category_id = ?", categoryId)
	}

	var total int64
	query.Count(&total)

	var threads []models.Thread
	if err := query.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified, honorable_title")
		}).
		Preload("Category").
		Order("is_pinned DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&threads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch threads!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Threads fetched!", fiber.Map{
		"threads": threads,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetThread returns one thread and bumps its view counter
func GetThread(c *fiber.Ctx) error {
	threadId := c.Params("id")

	db := database.Database.Db

	var thread models.Thread
	if err := db.Where("id = ? AND is_deleted = false", threadId).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified, honorable_title")
		}).
		Preload("Category").
		First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	// Atomic bump, stale counter in the response is fine
	db.Model(&thread).UpdateColumn("views", gorm.Expr("views + 1"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread fetched!", thread)
}

// UpdateThread lets the author edit title/content of an unlocked thread
func UpdateThread(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	threadId := c.Params("id")

	reqData := new(struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var thread models.Thread
	if err := db.Where("id = ? AND is_deleted = false", threadId).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}
	if thread.AuthorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own threads!", nil)
	}
	if thread.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Thread is locked!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_edited":  true,
		"edited_at":  &now,
		"edit_count": gorm.Expr("edit_count + 1"),
	}
	if reqData.Title != nil && *reqData.Title != "" {
		updates["title"] = *reqData.Title
	}
	if reqData.Content != nil && *reqData.Content != "" {
		updates["content"] = *reqData.Content
	}

	if err := db.Model(&thread).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread updated successfully!", thread)
}

// ModerateThread lets an admin pin, lock, or soft-delete a thread
func ModerateThread(c *fiber.Ctx) error {
	threadId := c.Params("id")

	reqData := new(struct {
		IsPinned  *bool `json:"isPinned"`
		IsLocked  *bool `json:"isLocked"`
		IsDeleted *bool `json:"isDeleted"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var thread models.Thread
	if err := db.Where("id = ?", threadId).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.IsPinned != nil {
		updates["is_pinned"] = *reqData.IsPinned
	}
	if reqData.IsLocked != nil {
		updates["is_locked"] = *reqData.IsLocked
	}
	if reqData.IsDeleted != nil {
		updates["is_deleted"] = *reqData.IsDeleted
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&thread).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to moderate thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread updated successfully!", thread)
}
