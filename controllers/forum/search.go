package forumController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const searchResultLimit = 20

// Search runs three parameterized ILIKE lookups: threads by title/content,
// posts by content, users by username.
func Search(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if len(term) < 2 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search term must be at least 2 characters!", nil)
	}

	// The term is always a bind parameter, never interpolated.
	pattern := "%" + term + "%"
	db := database.Database.Db

	var threads []models.Thread
	if err := db.Where("is_deleted = false AND (title ILIKE ? OR content ILIKE ?)", pattern, pattern).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url")
		}).
		Order("created_at DESC").
		Limit(searchResultLimit).
		Find(&threads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	var posts []models.Post
	if err := db.Where("is_deleted = false AND content ILIKE ?", pattern).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url")
		}).
		Order("created_at DESC").
		Limit(searchResultLimit).
		Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	var users []models.User
	if err := db.Select("id, username, avatar_url, post_count, reputation, is_verified").
		Where("is_deleted = false AND username ILIKE ?", pattern).
		Limit(searchResultLimit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results fetched!", fiber.Map{
		"threads": threads,
		"posts":   posts,
		"users":   users,
	})
}

type trendingThread struct {
	models.Thread
	ReplyCount int64   `json:"replyCount"`
	Score      float64 `json:"score"`
}

// Trending returns recent threads ranked by a weighted activity score:
// replies weigh heaviest, then views, decayed by age.
func Trending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 20 {
		limit = 5
	}

	db := database.Database.Db
	since := time.Now().AddDate(0, 0, -7)

	var threads []models.Thread
	if err := db.Where("is_deleted = false AND created_at >= ?", since).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url")
		}).
		Preload("Category").
		Find(&threads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trending threads!", nil)
	}

	ranked := make([]trendingThread, 0, len(threads))
	for _, t := range threads {
		var replies int64
		db.Model(&models.Post{}).Where("thread_id = ? AND is_deleted = false", t.ID).Count(&replies)

		ageHours := time.Since(t.CreatedAt).Hours()
		score := float64(replies)*3 + float64(t.Views)
		// Halve the score roughly every two days
		score = score / (1 + ageHours/48)

		ranked = append(ranked, trendingThread{Thread: t, ReplyCount: replies, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trending threads fetched!", ranked)
}
