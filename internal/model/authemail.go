package model

import (
	"time"
)

// AuthEmail is a one-time-code record for the email verification and
// password reset flows. Rows are never deleted; the expiry window is the only
// deactivation mechanism.
type AuthEmail struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"column:email;index;not null"`
	Purpose   string    `gorm:"column:type;not null"` // EMAIL_VERIFY | PASSWORD_RESET
	Code      string    `gorm:"column:code;index;not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"column:expired_at;not null"`
}

func (AuthEmail) TableName() string {
	return "auth_emails"
}

// Expired reports whether the code is past its window at the given instant.
func (a *AuthEmail) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}
