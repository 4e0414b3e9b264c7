package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"default:'#6366F1'" json:"color"`
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`
	IsDeleted   bool   `gorm:"default:false" json:"-"`
}
