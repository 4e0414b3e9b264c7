package adminController

import (
	"agora/database"
	"agora/middleware"
	"agora/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitVerificationRequest lets a user ask for the verified badge
func SubmitVerificationRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		Content string   `json:"content"`
		Images  []string `json:"images"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Content) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
	}
	if len(reqData.Images) > models.MaxImagesPerVerification {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A verification request may carry at most 3 images!", nil)
	}

	db := database.Database.Db

	// One open request at a time
	var existing models.VerificationRequest
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = false", userId, models.RequestStatusPending).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending verification request!", nil)
	}

	request := models.VerificationRequest{
		UserID:  userId,
		Content: reqData.Content,
		Images:  strings.Join(reqData.Images, ","),
		Status:  models.RequestStatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit verification request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Verification request submitted! Pending review.", request)
}

// ListVerificationRequests returns requests for admin review
func ListVerificationRequests(c *fiber.Ctx) error {
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

	query := db.Model(&models.VerificationRequest{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.VerificationRequest
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, is_verified")
		}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch verification requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification requests fetched!", fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ResolveVerificationRequest approves or rejects a pending verification
// request; approval flips the user's verified badge
func ResolveVerificationRequest(c *fiber.Ctx) error {
	adminId := c.Locals("userId").(uint)
	requestId, err := strconv.Atoi(c.Params("id"))
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
	}

	reqData := new(struct {
		Action     string `json:"action"` // APPROVE, REJECT
		AdminNotes string `json:"adminNotes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	target := models.RequestStatus("")
	switch reqData.Action {
	case "APPROVE":
		target = models.RequestStatusApproved
	case "REJECT":
		target = models.RequestStatusRejected
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action! Use APPROVE or REJECT.", nil)
	}

	db := database.Database.Db

	var request models.VerificationRequest
	if err := db.Where("id = ? AND is_deleted = false", requestId).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Verification request not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Guard on PENDING so two admins cannot both resolve it
		res := tx.Model(&models.VerificationRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{"status": target, "admin_notes": reqData.AdminNotes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if target == models.RequestStatusApproved {
			if err := tx.Model(&models.User{}).Where("id = ?", request.UserID).
				Update("is_verified", true).Error; err != nil {
				return err
			}
		}
		n := models.Notification{
			RecipientID: request.UserID,
			ActorID:     adminId,
			Type:        models.NotifyVerificationUpdated,
			Title:       "Your verification request was " + strings.ToLower(string(target)),
			Body:        reqData.AdminNotes,
			ReferenceID: request.ID,
		}
		return tx.Create(&n).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request is already resolved!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve verification request!", nil)
	}

	request.Status = target
	request.AdminNotes = reqData.AdminNotes
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification request resolved!", request)
}

// SubmitAdminRequest lets a user apply for moderation rights
func SubmitAdminRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData := new(struct {
		Content string `json:"content"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if strings.TrimSpace(reqData.Content) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content is required!", nil)
	}

	db := database.Database.Db

	var existing models.AdminRequest
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = false", userId, models.RequestStatusPending).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have a pending admin request!", nil)
	}

	request := models.AdminRequest{
		UserID:  userId,
		Content: reqData.Content,
		Status:  models.RequestStatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit admin request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Admin request submitted! Pending review.", request)
}

// ListAdminRequests returns admin-role applications for owner review
func ListAdminRequests(c *fiber.Ctx) error {
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

	query := db.Model(&models.AdminRequest{}).Where("is_deleted = false")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.AdminRequest
	if err := query.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, avatar_url, role, post_count, reputation")
		}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch admin requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin requests fetched!", fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ResolveAdminRequest approves or rejects an admin-role application.
// Owner only; approval promotes the user to ADMIN.
func ResolveAdminRequest(c *fiber.Ctx) error {
	ownerId := c.Locals("userId").(uint)
	requestId, err := strconv.Atoi(c.Params("id"))
	if err != nil || requestId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
	}

	reqData := new(struct {
		Action     string `json:"action"` // APPROVE, REJECT
		AdminNotes string `json:"adminNotes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	target := models.RequestStatus("")
	switch reqData.Action {
	case "APPROVE":
		target = models.RequestStatusApproved
	case "REJECT":
		target = models.RequestStatusRejected
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid action! Use APPROVE or REJECT.", nil)
	}

	db := database.Database.Db

	var request models.AdminRequest
	if err := db.Where("id = ? AND is_deleted = false", requestId).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Admin request not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AdminRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Updates(map[string]interface{}{"status": target, "admin_notes": reqData.AdminNotes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if target == models.RequestStatusApproved {
			if err := tx.Model(&models.User{}).
				Where("id = ? AND role = ?", request.UserID, models.RoleUser).
				Update("role", models.RoleAdmin).Error; err != nil {
				return err
			}
		}
		n := models.Notification{
			RecipientID: request.UserID,
			ActorID:     ownerId,
			Type:        models.NotifyVerificationUpdated,
			Title:       "Your admin request was " + strings.ToLower(string(target)),
			Body:        reqData.AdminNotes,
			ReferenceID: request.ID,
		}
		return tx.Create(&n).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request is already resolved!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve admin request!", nil)
	}

	request.Status = target
	request.AdminNotes = reqData.AdminNotes
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin request resolved!", request)
}
