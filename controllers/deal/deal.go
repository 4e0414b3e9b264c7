package dealController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"agora/models/deal"
	"agora/utils"
	"agora/workflow"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// session builds the workflow session for the authenticated caller. The role
// comes from the users table so a demotion takes effect before token expiry.
func session(c *fiber.Ctx) workflow.Session {
	userId := c.Locals("userId").(uint)

	var user models.User
	database.Database.Db.
		Select("id, role").
		Where("id = ? AND is_deleted = false", userId).
		First(&user)

	return workflow.Session{UserID: userId, Role: user.Role}
}

// ProposeDeal creates a new deal towards a recipient
func ProposeDeal(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedProposeDeal").(*struct {
		RecipientID uint     `json:"recipientId" validate:"required"`
		Title       string   `json:"title" validate:"required,min=3,max=200"`
		Description string   `json:"description" validate:"required"`
		Images      []string `json:"images" validate:"max=5"`
		DealType    string   `json:"dealType" validate:"omitempty,oneof=HIRE_AGENT TRANSACTION OTHER"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	d, err := workflow.ProposeDeal(database.Database.Db, session(c), workflow.ProposeDealInput{
		RecipientID: reqData.RecipientID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Images:      reqData.Images,
		DealType:    reqData.DealType,
	})
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Deal proposed successfully!", d)
}

// Respond appends a negotiation response or an admin approval decision
func Respond(c *fiber.Ctx) error {
	dealId, err := strconv.Atoi(c.Params("id"))
	if err != nil || dealId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid deal ID!", nil)
	}

	reqData, ok := c.Locals("validatedRespond").(*struct {
		Content      string   `json:"content"`
		Images       []string `json:"images"`
		ResponseType string   `json:"responseType"`
		IsApproved   *bool    `json:"isApproved"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	resp, err := workflow.Respond(database.Database.Db, session(c), workflow.RespondInput{
		DealID:       uint(dealId),
		Content:      reqData.Content,
		Images:       reqData.Images,
		ResponseType: deal.ResponseType(reqData.ResponseType),
		IsApproved:   reqData.IsApproved,
	})
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Response recorded successfully!", resp)
}

// CancelDeal withdraws a deal the caller initiated
func CancelDeal(c *fiber.Ctx) error {
	dealId, err := strconv.Atoi(c.Params("id"))
	if err != nil || dealId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid deal ID!", nil)
	}

	d, err := workflow.CancelDeal(database.Database.Db, session(c), uint(dealId))
	if err != nil {
		return middleware.WorkflowErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deal cancelled successfully!", d)
}

// MyDeals lists deals where the caller is initiator or recipient
func MyDeals(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&deal.Deal{}).
		Where("is_deleted = false AND (initiator_id = ? OR recipient_id = ?)", userId, userId)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var deals []deal.Deal
	if err := query.
		Preload("Initiator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified")
		}).
		Preload("Recipient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified")
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

// GetDeal returns one deal with its full negotiation log. Visible to the two
// parties and admins only.
func GetDeal(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	dealId := c.Params("id")

	db := database.Database.Db

	var d deal.Deal
	if err := db.Where("id = ? AND is_deleted = false", dealId).
		Preload("Initiator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified")
		}).
		Preload("Recipient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, reputation, is_verified")
		}).
		First(&d).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Deal not found!", nil)
	}

	if userId != d.InitiatorID && userId != d.RecipientID {
		var caller models.User
		if err := db.Where("id = ? AND role IN ?", userId, []string{models.RoleAdmin, models.RoleOwner}).
			First(&caller).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a party to this deal!", nil)
		}
	}

	var responses []deal.DealResponse
	if err := db.Where("deal_id = ?", d.ID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, role")
		}).
		Order("created_at ASC").
		Find(&responses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deal responses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deal fetched!", fiber.Map{
		"deal":      d,
		"responses": responses,
	})
}

// UploadDealImages stores up to 5 images and returns their paths for use in
// a proposal or response
func UploadDealImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	files := form.File["images"]
	if len(files) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one image is required!", nil)
	}
	if len(files) > deal.MaxImagesPerDeal {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A deal may carry at most 5 images!", nil)
	}

	var paths []string
	for _, file := range files {
		path, err := utils.SaveUploadedFile(file, "./public/uploads/deals")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
		}
		paths = append(paths, utils.GetFileURL(path))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Images uploaded successfully!", fiber.Map{
		"images": paths,
	})
}
