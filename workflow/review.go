package workflow

import (
	"errors"
	"strings"

	"agora/models"
	"agora/models/deal"

	"gorm.io/gorm"
)

// SubmitReviewInput carries a post-completion rating
type SubmitReviewInput struct {
	DealID     uint
	RevieweeID uint
	Rating     int
	ReviewText string
}

// SubmitReview records a rating between the two parties of an approved deal
// and recomputes the reviewee's reputation. One review per (deal, reviewer).
func SubmitReview(db *gorm.DB, s Session, in SubmitReviewInput) (*deal.DealReview, error) {
	db, cancel := store(db)
	defer cancel()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, validationf("rating must be between 1 and 5")
	}

	d, err := loadDeal(db, in.DealID)
	if err != nil {
		return nil, err
	}
	if d.Status != deal.StatusApproved {
		return nil, statef("reviews are only accepted once a deal is approved")
	}
	if s.UserID != d.InitiatorID && s.UserID != d.RecipientID {
		return nil, authorizationf("only a party to the deal may review it")
	}
	other := d.RecipientID
	if s.UserID == d.RecipientID {
		other = d.InitiatorID
	}
	if in.RevieweeID != other {
		return nil, validationf("reviewee must be the other party of the deal")
	}

	var existing deal.DealReview
	err = db.Where("deal_id = ? AND reviewer_id = ?", d.ID, s.UserID).First(&existing).Error
	if err == nil {
		return nil, duplicatef("you have already reviewed this deal")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("failed to check for an existing review", err)
	}

	review := deal.DealReview{
		DealID:     d.ID,
		ReviewerID: s.UserID,
		RevieweeID: in.RevieweeID,
		Rating:     in.Rating,
		ReviewText: in.ReviewText,
	}

	var notes []models.Notification
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		if err := recomputeReputation(tx, review.RevieweeID); err != nil {
			return err
		}
		n := models.Notification{
			RecipientID: review.RevieweeID,
			ActorID:     s.UserID,
			Type:        models.NotifyReviewReceived,
			Title:       "You received a deal review",
			Body:        d.Title,
			ReferenceID: review.DealID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		notes = append(notes, n)
		return nil
	})
	if err != nil {
		// The unique (deal, reviewer) index is the last word on races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicatef("you have already reviewed this deal")
		}
		return nil, storeError("failed to submit review", err)
	}

	dispatch(notes)
	return &review, nil
}

// FlagReview opens a pending assessment against a review. Allowed for the
// reviewer, the reviewee, or an administrator; once per user per review.
func FlagReview(db *gorm.DB, s Session, reviewID uint, reason string) (*deal.ReviewAssessment, error) {
	db, cancel := store(db)
	defer cancel()

	var review deal.DealReview
	if err := db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("review %d not found", reviewID)
		}
		return nil, storeError("failed to load review", err)
	}

	if s.UserID != review.ReviewerID && s.UserID != review.RevieweeID && !s.IsAdmin() {
		return nil, authorizationf("only a party to the reviewed deal may flag it")
	}

	var existing deal.ReviewAssessment
	err := db.Where("review_id = ? AND user_id = ?", reviewID, s.UserID).First(&existing).Error
	if err == nil {
		return nil, duplicatef("you have already flagged this review")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("failed to check for an existing flag", err)
	}

	assessment := deal.ReviewAssessment{
		ReviewID: reviewID,
		UserID:   s.UserID,
		Reason:   reason,
		Status:   models.RequestStatusPending,
	}
	if err := db.Create(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicatef("you have already flagged this review")
		}
		return nil, storeError("failed to create assessment", err)
	}

	return &assessment, nil
}

// ResolveAssessment closes a pending assessment. Admin only. When approved
// and the retraction policy is on, the disputed review stops counting toward
// the reviewee's reputation.
func ResolveAssessment(db *gorm.DB, s Session, assessmentID uint, approve bool, notes string) (*deal.ReviewAssessment, error) {
	db, cancel := store(db)
	defer cancel()

	if !s.IsAdmin() {
		return nil, authorizationf("only an administrator may resolve an assessment")
	}

	var assessment deal.ReviewAssessment
	if err := db.Where("id = ?", assessmentID).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("assessment %d not found", assessmentID)
		}
		return nil, storeError("failed to load assessment", err)
	}
	if assessment.Status != models.RequestStatusPending {
		return nil, statef("assessment is already %s", strings.ToLower(string(assessment.Status)))
	}

	target := models.RequestStatusRejected
	if approve {
		target = models.RequestStatusApproved
	}

	var events []models.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		// Guard on PENDING so two admins cannot both resolve it.
		res := tx.Model(&deal.ReviewAssessment{}).
			Where("id = ? AND status = ?", assessmentID, models.RequestStatusPending).
			Updates(map[string]interface{}{"status": target, "admin_notes": notes})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return statef("assessment was resolved by another administrator")
		}

		if approve && AssessmentRetractsReview {
			var review deal.DealReview
			if err := tx.First(&review, assessment.ReviewID).Error; err != nil {
				return err
			}
			if err := tx.Model(&deal.DealReview{}).
				Where("id = ?", review.ID).
				Update("retracted", true).Error; err != nil {
				return err
			}
			if err := recomputeReputation(tx, review.RevieweeID); err != nil {
				return err
			}
		}

		n := models.Notification{
			RecipientID: assessment.UserID,
			ActorID:     s.UserID,
			Type:        models.NotifyAssessmentResolved,
			Title:       "Your review flag was " + strings.ToLower(string(target)),
			Body:        notes,
			ReferenceID: assessment.ReviewID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		events = append(events, n)
		return nil
	})
	if err != nil {
		if KindOf(err) != 0 {
			return nil, err
		}
		return nil, storeError("failed to resolve assessment", err)
	}

	assessment.Status = target
	assessment.AdminNotes = notes
	dispatch(events)
	return &assessment, nil
}

// recomputeReputation rebuilds a user's reputation as the sum of ratings of
// their non-retracted reviews. Monotone per review, bounded per review.
func recomputeReputation(tx *gorm.DB, userID uint) error {
	var total int64
	if err := tx.Model(&deal.DealReview{}).
		Where("reviewee_id = ? AND retracted = ?", userID, false).
		Select("COALESCE(SUM(rating), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		Update("reputation", total).Error
}
