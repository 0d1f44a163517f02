package model

import (
	"gorm.io/gorm"
)

// Review is a user's comment on a café. Soft-deleted alongside the account
// when the author deletes their account.
type Review struct {
	gorm.Model
	CafeID  uint   `gorm:"column:cafe_id;index;not null"`
	UserID  uint   `gorm:"column:user_id;index;not null"`
	Content string `gorm:"column:content;size:60;not null"`

	User User `gorm:"foreignKey:UserID"`
}

// Like marks a café as liked by a user. Unliking soft-deletes the row, so a
// re-like creates a fresh one; uniqueness only holds among live rows.
type Like struct {
	gorm.Model
	CafeID uint `gorm:"column:cafe_id;uniqueIndex:idx_likes_cafe_user,where:deleted_at IS NULL;not null"`
	UserID uint `gorm:"column:user_id;uniqueIndex:idx_likes_cafe_user,where:deleted_at IS NULL;not null"`
}
