package models

import "gorm.io/gorm"

type AdminRequest struct {
	gorm.Model
	UserID     uint          `gorm:"not null;index" json:"userId"`
	Content    string        `gorm:"type:text;not null" json:"content"`
	Status     RequestStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	AdminNotes string        `gorm:"type:text" json:"adminNotes"`
	IsDeleted  bool          `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
