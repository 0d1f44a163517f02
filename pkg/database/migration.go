package database

import (
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/model"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AuthEmail{},
		&model.Cafe{},
		&model.Menu{},
		&model.OperatingHour{},
		&model.Review{},
		&model.Like{},
	)
}
