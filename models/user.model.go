package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"
)

type User struct {
	gorm.Model
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	AvatarURL      string    `gorm:"default:''" json:"avatarUrl"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Role           string    `gorm:"default:'USER'" json:"role"` // USER, ADMIN, OWNER
	PostCount      int       `gorm:"default:0" json:"postCount"`
	Reputation     int       `gorm:"default:0" json:"reputation"`
	IsVerified     bool      `gorm:"default:false" json:"isVerified"`
	IsBanned       bool      `gorm:"default:false" json:"isBanned"`
	HonorableTitle string    `gorm:"default:''" json:"honorableTitle"`
	LastLogin      time.Time `gorm:"default:NULL" json:"lastLogin"`
	IsDeleted      bool      `gorm:"default:false" json:"-"`
}

// IsAdmin reports whether the user holds administrative capability
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}
