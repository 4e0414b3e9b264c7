package models

import "gorm.io/gorm"

// Notification types emitted by the deal workflow
const (
	NotifyDealProposed        = "DEAL_PROPOSED"
	NotifyDealResponse        = "DEAL_RESPONSE"
	NotifyDealApproved        = "DEAL_APPROVED"
	NotifyDealRejected        = "DEAL_REJECTED"
	NotifyDealCancelled       = "DEAL_CANCELLED"
	NotifyReviewReceived      = "REVIEW_RECEIVED"
	NotifyAssessmentResolved  = "ASSESSMENT_RESOLVED"
	NotifyVerificationUpdated = "VERIFICATION_UPDATED"
)

// Notification is an event row keyed by recipient, written by workflow
// operations in the same transaction as the state change they describe.
type Notification struct {
	gorm.Model
	RecipientID uint   `gorm:"not null;index" json:"recipientId"`
	ActorID     uint   `gorm:"default:0" json:"actorId"` // 0 = system
	Type        string `gorm:"type:varchar(30);not null" json:"type"`
	Title       string `gorm:"not null" json:"title"`
	Body        string `gorm:"type:text" json:"body"`
	ReferenceID uint   `gorm:"default:0" json:"referenceId"` // deal/review/request id
	IsRead      bool   `gorm:"default:false" json:"isRead"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
