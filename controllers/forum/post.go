package forumController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePost replies to a thread and bumps the author's post count
func CreatePost(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	threadId := c.Params("id")

	reqData, ok := c.Locals("validatedCreatePost").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var thread models.Thread
	if err := db.Where("id = ? AND is_deleted = false", threadId).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}
	if thread.IsLocked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Thread is locked!", nil)
	}

	post := models.Post{
		Content:  reqData.Content,
		AuthorID: userId,
		ThreadID: thread.ID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userId).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", post)
}

// ListPosts returns a thread's posts in chronological order
func ListPosts(c *fiber.Ctx) error {
	threadId := c.Params("id")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.Post{}).Where("thread_id = ? AND is_deleted = false", threadId).Count(&total)

	var posts []models.Post
	if err := db.Where("thread_id = ? AND is_deleted = false", threadId).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, post_count, reputation, is_verified, honorable_title")
		}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched!", fiber.Map{
		"posts": posts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdatePost lets the author edit their post
func UpdatePost(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	postId := c.Params("id")

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Post content is required!", nil)
	}

	db := database.Database.Db

	var post models.Post
	if err := db.Where("id = ? AND is_deleted = false", postId).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}
	if post.AuthorID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own posts!", nil)
	}

	now := time.Now()
	if err := db.Model(&post).Updates(map[string]interface{}{
		"content":    reqData.Content,
		"is_edited":  true,
		"edited_at":  &now,
		"edit_count": gorm.Expr("edit_count + 1"),
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost soft-deletes a post (author or admin) and decrements the
// author's post count
func DeletePost(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	postId := c.Params("id")

	db := database.Database.Db

	var post models.Post
	if err := db.Where("id = ? AND is_deleted = false", postId).First(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if post.AuthorID != userId {
		var caller models.User
		if err := db.Where("id = ? AND role IN ?", userId, []string{models.RoleAdmin, models.RoleOwner}).
			First(&caller).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own posts!", nil)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND post_count > 0", post.AuthorID).
			UpdateColumn("post_count", gorm.Expr("post_count - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}
