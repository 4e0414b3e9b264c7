package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	gorm.Model
	Content   string     `gorm:"type:text;not null" json:"content"`
	AuthorID  uint       `gorm:"not null;index" json:"authorId"`
	ThreadID  uint       `gorm:"not null;index" json:"threadId"`
	IsEdited  bool       `gorm:"default:false" json:"isEdited"`
	EditedAt  *time.Time `json:"editedAt"`
	EditCount int        `gorm:"default:0" json:"editCount"`
	IsDeleted bool       `gorm:"default:false" json:"-"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
