package models

import (
	"time"

	"gorm.io/gorm"
)

type Thread struct {
	gorm.Model
	Title      string     `gorm:"not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	AuthorID   uint       `gorm:"not null;index" json:"authorId"`
	CategoryID uint       `gorm:"not null;index" json:"categoryId"`
	IsPinned   bool       `gorm:"default:false" json:"isPinned"`
	IsLocked   bool       `gorm:"default:false" json:"isLocked"`
	Views      int        `gorm:"default:0" json:"views"`
	IsEdited   bool       `gorm:"default:false" json:"isEdited"`
	EditedAt   *time.Time `json:"editedAt"`
	EditCount  int        `gorm:"default:0" json:"editCount"`
	IsDeleted  bool       `gorm:"default:false" json:"-"`

	// Associations - omit in JSON list unless Preloaded
	Author   User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
