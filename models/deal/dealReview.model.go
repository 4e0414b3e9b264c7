package deal

import (
	"agora/models"

	"gorm.io/gorm"
)

// DealReview is a post-completion rating exchanged between the two parties
// of an approved deal. At most one review per (deal, reviewer) pair.
type DealReview struct {
	gorm.Model
	DealID     uint   `gorm:"not null;index;uniqueIndex:idx_deal_reviewer" json:"dealId"`
	ReviewerID uint   `gorm:"not null;uniqueIndex:idx_deal_reviewer" json:"reviewerId"`
	RevieweeID uint   `gorm:"not null;index" json:"revieweeId"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string `gorm:"type:text" json:"reviewText"`
	Retracted  bool   `gorm:"default:false" json:"retracted"`

	Deal     Deal        `gorm:"foreignKey:DealID" json:"deal,omitempty"`
	Reviewer models.User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewee models.User `gorm:"foreignKey:RevieweeID" json:"reviewee,omitempty"`
}

func (DealReview) TableName() string {
	return "deal_reviews"
}
