package deal

import (
	"agora/models"

	"gorm.io/gorm"
)

// ResponseType defines who a response speaks for
type ResponseType string

const (
	ResponseRecipient     ResponseType = "RECIPIENT_RESPONSE"
	ResponseAdminApproval ResponseType = "ADMIN_APPROVAL"
)

// DealResponse is one entry in the append-only negotiation log of a deal.
// Rows are never updated after creation.
type DealResponse struct {
	gorm.Model
	DealID       uint         `gorm:"not null;index" json:"dealId"`
	UserID       uint         `gorm:"not null" json:"userId"`
	Content      string       `gorm:"type:text" json:"content"`
	Images       string       `gorm:"type:text" json:"images"` // comma separated paths
	ResponseType ResponseType `gorm:"type:varchar(20);not null" json:"responseType"`
	IsApproved   *bool        `json:"isApproved"` // nil = undecided, admin_approval only

	Deal Deal        `gorm:"foreignKey:DealID" json:"deal,omitempty"`
	User models.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DealResponse) TableName() string {
	return "deal_responses"
}
