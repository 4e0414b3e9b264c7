package models

import "gorm.io/gorm"

// RequestStatus defines the status of a user-submitted request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// MaxImagesPerVerification caps attachments on a verification request
const MaxImagesPerVerification = 3

type VerificationRequest struct {
	gorm.Model
	UserID     uint          `gorm:"not null;index" json:"userId"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	Images     string        `gorm:"type:text" json:"images"` // comma separated paths
	Status     RequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	AdminNotes string        `gorm:"type:text" json:"adminNotes"`
	IsDeleted  bool          `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
