package models

import "gorm.io/gorm"

type SiteSettings struct {
	gorm.Model
	SiteTitle   string `gorm:"default:'Agora'" json:"siteTitle"`
	SiteLogoURL string `gorm:"default:''" json:"siteLogoUrl"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
