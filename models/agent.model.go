package models

import "gorm.io/gorm"

// MaxAgentProfiles caps how many agent listings one user may own
const MaxAgentProfiles = 5

type Agent struct {
	gorm.Model
	UserID         uint   `gorm:"not null;index" json:"userId"`
	ProfilePicture string `gorm:"default:''" json:"profilePicture"`
	Height         string `gorm:"default:''" json:"height"`
	Weight         string `gorm:"default:''" json:"weight"`
	Location       string `gorm:"default:''" json:"currentLocation"`
	Services       string `gorm:"type:text" json:"services"` // comma separated
	Tags           string `gorm:"type:text" json:"tags"`     // comma separated

	PricingShortTime string `gorm:"default:''" json:"pricingShortTime"`
	PricingLongTime  string `gorm:"default:''" json:"pricingLongTime"`
	PricingOvernight string `gorm:"default:''" json:"pricingOvernight"`
	PricingPrivate   string `gorm:"default:''" json:"pricingPrivate"`

	Description string `gorm:"type:text" json:"description"`

	SocialTwitter   string `gorm:"default:''" json:"socialTwitter"`
	SocialInstagram string `gorm:"default:''" json:"socialInstagram"`
	SocialFacebook  string `gorm:"default:''" json:"socialFacebook"`
	SocialTelegram  string `gorm:"default:''" json:"socialTelegram"`

	IsDeleted bool `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
