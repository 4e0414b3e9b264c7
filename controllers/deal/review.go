package dealController

import (
	"agora/database"
	"agora/middleware"
	"agora/models/deal"
	"agora/workflow"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview rates the other party of an approved deal
func SubmitReview(c *fiber.Ctx) error {
	dealId, err := strconv.Atoi(c.Params("id"))
	if err != nil || dealId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid deal ID!", nil)
	}

	reqData, ok := c.Locals("validatedSubmitReview").(*struct {
		RevieweeID uint   `json:"revieweeId"`
		Rating     int    `json:"rating"`
		ReviewText string `json:"reviewText"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	review, err := workflow.SubmitReview(database.Database.Db, session(c), workflow.SubmitReviewInput{
		DealID:     uint(dealId),
		RevieweeID: reqData.RevieweeID,
		Rating:     reqData.Rating,
		ReviewText: reqData.ReviewText,
	})
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// UserReviews returns the non-retracted reviews received by a user
func UserReviews(c *fiber.Ctx) error {
	userId := c.Params("id")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&deal.DealReview{}).
		Where("reviewee_id = ? AND retracted = ?", userId, false).
		Count(&total)

	var reviews []deal.DealReview
	if err := db.Where("reviewee_id = ? AND retracted = ?", userId, false).
		Preload("Reviewer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// FlagReview disputes a review for admin adjudication
func FlagReview(c *fiber.Ctx) error {
	reviewId, err := strconv.Atoi(c.Params("id"))
	if err != nil || reviewId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review ID!", nil)
	}

	reqData := new(struct {
		Reason string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	assessment, err := workflow.FlagReview(database.Database.Db, session(c), uint(reviewId), reqData.Reason)
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review flagged for assessment!", assessment)
}
