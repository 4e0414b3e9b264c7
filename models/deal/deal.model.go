package deal

import (
	"strings"

	"agora/models"

	"gorm.io/gorm"
)

// Status defines the lifecycle state of a deal
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusNegotiating Status = "NEGOTIATING"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusCancelled   Status = "CANCELLED"
)

// Deal types
const (
	TypeHireAgent   = "HIRE_AGENT"
	TypeTransaction = "TRANSACTION"
	TypeOther       = "OTHER"
)

// MaxImagesPerDeal caps attachments on a deal or deal response
const MaxImagesPerDeal = 5

type Deal struct {
	gorm.Model
	InitiatorID uint   `gorm:"not null;index" json:"initiatorId"`
	RecipientID uint   `gorm:"not null;index" json:"recipientId"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Images      string `gorm:"type:text" json:"images"` // comma separated paths
	Status      Status `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	DealType    string `gorm:"type:varchar(20);default:'OTHER'" json:"dealType"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`

	// Associations - omit in JSON list unless Preloaded
	Initiator models.User `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	Recipient models.User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// IsTerminal reports whether the status accepts no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// ValidType reports whether t is a known deal type
func ValidType(t string) bool {
	return t == TypeHireAgent || t == TypeTransaction || t == TypeOther
}

// EncodeImages packs image paths into the stored comma-separated form
func EncodeImages(images []string) string {
	return strings.Join(images, ",")
}

// DecodeImages unpacks the stored form back into paths
func DecodeImages(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, ",")
}
