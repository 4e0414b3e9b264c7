package adminController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"agora/models/deal"
	"agora/workflow"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PendingAssessments lists review flags awaiting adjudication
func PendingAssessments(c *fiber.Ctx) error {
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
	db.Model(&deal.ReviewAssessment{}).
		Where("status = ?", models.RequestStatusPending).
		Count(&total)

	var assessments []deal.ReviewAssessment
	if err := db.Where("status = ?", models.RequestStatusPending).
		Preload("Review").
		Preload("Review.Reviewer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Preload("Review.Reviewee", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&assessments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assessments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessments fetched!", fiber.Map{
		"assessments": assessments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ResolveAssessment adjudicates a review flag through the workflow engine
func ResolveAssessment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)

	assessmentId, err := strconv.Atoi(c.Params("id"))
	if err != nil || assessmentId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assessment ID!", nil)
	}

	reqData := new(struct {
		Action     string `json:"action"` // APPROVE, REJECT
		AdminNotes string `json:"adminNotes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Action != "APPROVE" && reqData.Action != "REJECT" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action! Use APPROVE or REJECT.", nil)
	}

	assessment, err := workflow.ResolveAssessment(
		database.Database.Db,
		workflow.Session{UserID: userId, Role: role},
		uint(assessmentId),
		reqData.Action == "APPROVE",
		reqData.AdminNotes,
	)
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment resolved!", assessment)
}

// ListAllDeals gives admins oversight of every deal
func ListAllDeals(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&deal.Deal{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var deals []deal.Deal
	if err := query.
		Preload("Initiator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Preload("Recipient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username")
		}).
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&deals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deals!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deals fetched!", fiber.Map{
		"deals": deals,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BanUser toggles a user's banned flag
func BanUser(c *fiber.Ctx) error {
	userId, err := strconv.Atoi(c.Params("id"))
	if err != nil || userId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	reqData := new(struct {
		Banned bool `json:"banned"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if user.Role == models.RoleOwner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "The owner account cannot be banned!", nil)
	}

	if err := db.Model(&user).Update("is_banned", reqData.Banned).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User banned successfully!"
	if !reqData.Banned {
		message = "User unbanned successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

// GetSiteSettings returns the site title and logo (public)
func GetSiteSettings(c *fiber.Ctx) error {
	var settings models.SiteSettings
	if err := database.Database.Db.First(&settings).Error; err != nil {
		// No row yet: answer with defaults instead of failing
		settings = models.SiteSettings{SiteTitle: "Agora"}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Site settings fetched!", settings)
}

// UpdateSiteSettings updates the site title and logo (owner only)
func UpdateSiteSettings(c *fiber.Ctx) error {
	reqData := new(struct {
		SiteTitle   *string `json:"siteTitle"`
		SiteLogoURL *string `json:"siteLogoUrl"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var settings models.SiteSettings
	if err := db.First(&settings).Error; err != nil {
		settings = models.SiteSettings{SiteTitle: "Agora"}
		if err := db.Create(&settings).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update site settings!", nil)
		}
	}

	updates := map[string]interface{}{}
	if reqData.SiteTitle != nil && *reqData.SiteTitle != "" {
		updates["site_title"] = *reqData.SiteTitle
	}
	if reqData.SiteLogoURL != nil {
		updates["site_logo_url"] = *reqData.SiteLogoURL
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&settings).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update site settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Site settings updated successfully!", settings)
}
