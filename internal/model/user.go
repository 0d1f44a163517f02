package model

import (
	"gorm.io/gorm"
)

// User is an account record. Deletion is always a soft delete; gorm's
// DeletedAt keeps removed users out of every default query, which is what
// backs the "deleted users are excluded from uniqueness checks" rule.
type User struct {
	gorm.Model
	Name     string `gorm:"column:name;uniqueIndex:idx_users_name,where:deleted_at IS NULL;not null"`
	Email    string `gorm:"column:email;uniqueIndex:idx_users_email,where:deleted_at IS NULL;not null"`
	Phone    string `gorm:"column:phone_number;not null"`
	Password string `gorm:"column:password;not null"`
	Image    string `gorm:"column:image_path"`

	Reviews []Review `gorm:"foreignKey:UserID"`
	Likes   []Like   `gorm:"foreignKey:UserID"`
}
