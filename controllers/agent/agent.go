package agentController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateAgent registers a new agent listing for the caller
func CreateAgent(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCreateAgent").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var count int64
	db.Model(&models.Agent{}).Where("user_id = ? AND is_deleted = false", userId).Count(&count)
	if count >= models.MaxAgentProfiles {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You can have at most 5 agent listings!", nil)
	}

	agent := models.Agent{
		UserID:           userId,
		Location:         reqData.Location,
		Height:           reqData.Height,
		Weight:           reqData.Weight,
		Services:         strings.Join(reqData.Services, ","),
		Tags:             strings.Join(reqData.Tags, ","),
		PricingShortTime: reqData.PricingShortTime,
		PricingLongTime:  reqData.PricingLongTime,
		PricingOvernight: reqData.PricingOvernight,
		PricingPrivate:   reqData.PricingPrivate,
		Description:      reqData.Description,
	}
	if err := db.Create(&agent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create agent listing!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Agent listing created successfully!", agent)
}

// ListAgents returns a paginated public agent directory with optional
// location/service/tag filters
func ListAgents(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 9)
	location := strings.TrimSpace(c.Query("location"))
	service := strings.TrimSpace(c.Query("service"))
	tag := strings.TrimSpace(c.Query("tag"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 9
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Agent{}).Where("agents.is_deleted = false")
	if location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if service != "" {
		query = query.Where("services ILIKE ?", "%"+service+"%")
	}
	if tag != "" {
		query = query.Where("tags ILIKE ?", "%"+tag+"%")
	}

	var total int64
	query.Count(&total)

	var agents []models.Agent
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&agents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch agents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agents fetched!", fiber.Map{
		"agents": agents,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetAgent returns one agent listing with its owner profile
func GetAgent(c *fiber.Ctx) error {
	agentId := c.Params("id")

	var agent models.Agent
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = false", agentId).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, bio, reputation, is_verified, honorable_title, created_at")
		}).
		First(&agent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Agent not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agent fetched!", agent)
}

// UpdateAgent lets the owner update their listing
func UpdateAgent(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	agentId := c.Params("id")

	reqData := new(struct {
		Location         *string  `json:"currentLocation"`
		Height           *string  `json:"height"`
		Weight           *string  `json:"weight"`
		Services         []string `json:"services"`
		Tags             []string `json:"tags"`
		PricingShortTime *string  `json:"pricingShortTime"`
		PricingLongTime  *string  `json:"pricingLongTime"`
		PricingOvernight *string  `json:"pricingOvernight"`
		PricingPrivate   *string  `json:"pricingPrivate"`
		Description      *string  `json:"description"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var agent models.Agent
	if err := db.Where("id = ? AND is_deleted = false", agentId).First(&agent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Agent not found!", nil)
	}
	if agent.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only update your own listings!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Location != nil {
		updates["location"] = *reqData.Location
	}
	if reqData.Height != nil {
		updates["height"] = *reqData.Height
	}
	if reqData.Weight != nil {
		updates["weight"] = *reqData.Weight
	}
	if reqData.Services != nil {
		updates["services"] = strings.Join(reqData.Services, ",")
	}
	if reqData.Tags != nil {
		updates["tags"] = strings.Join(reqData.Tags, ",")
	}
	if reqData.PricingShortTime != nil {
		updates["pricing_short_time"] = *reqData.PricingShortTime
	}
	if reqData.PricingLongTime != nil {
		updates["pricing_long_time"] = *reqData.PricingLongTime
	}
	if reqData.PricingOvernight != nil {
		updates["pricing_overnight"] = *reqData.PricingOvernight
	}
	if reqData.PricingPrivate != nil {
		updates["pricing_private"] = *reqData.PricingPrivate
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&agent).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update agent listing!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agent listing updated successfully!", agent)
}

// DeleteAgent soft-deletes the caller's listing
func DeleteAgent(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	agentId := c.Params("id")

	db := database.Database.Db

	var agent models.Agent
	if err := db.Where("id = ? AND is_deleted = false", agentId).First(&agent).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Agent not found!", nil)
	}
	if agent.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own listings!", nil)
	}

	if err := db.Model(&agent).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete agent listing!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agent listing deleted successfully!", nil)
}
