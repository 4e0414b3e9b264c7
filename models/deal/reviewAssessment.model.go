package deal

import (
	"agora/models"

	"gorm.io/gorm"
)

// ReviewAssessment is a dispute raised against a DealReview, adjudicated by
// an administrator. One assessment per (review, flagging user).
type ReviewAssessment struct {
	gorm.Model
	ReviewID   uint                 `gorm:"not null;index;uniqueIndex:idx_review_flagger" json:"reviewId"`
	UserID     uint                 `gorm:"not null;uniqueIndex:idx_review_flagger" json:"userId"`
	Reason     string               `gorm:"type:text" json:"reason"`
	Status     models.RequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	AdminNotes string               `gorm:"type:text" json:"adminNotes"`

	Review DealReview  `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
	User   models.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ReviewAssessment) TableName() string {
	return "review_assessments"
}
