package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/model"
)

type UserRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserRepository(db *gorm.DB, log *zap.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get user by ID",
				zap.Uint("user_id", id),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get user by email",
				zap.String("email", email),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &user, nil
}

// CountByEmail counts live users holding the email. Soft-deleted users are
// excluded by gorm's default scope.
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		r.log.Error("Failed to count users by email",
			zap.String("email", email),
			zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) CountByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		r.log.Error("Failed to count users by name",
			zap.String("name", name),
			zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		r.log.Error("Failed to create user",
			zap.String("email", user.Email),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password", hashedPassword)
	if result.Error != nil {
		r.log.Error("Failed to update user password",
			zap.Uint("user_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.log.Info("User password updated", zap.Uint("user_id", id))
	return nil
}

// UpdateProfile updates the mutable profile fields. Empty values are skipped.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, phone, image string) error {
	updates := map[string]any{}
	if phone != "" {
		updates["phone_number"] = phone
	}
	if image != "" {
		updates["image_path"] = image
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.log.Error("Failed to update user profile",
			zap.Uint("user_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAccount soft-deletes the user together with their likes and reviews,
// all stamped with the same timestamp, inside one transaction. Partial
// deletion is never visible: any failure rolls the whole thing back.
func (r *UserRepository) DeleteAccount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		result := tx.Model(&model.User{}).Where("id = ?", id).Update("deleted_at", now)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&model.Like{}).Where("user_id = ?", id).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Review{}).Where("user_id = ?", id).
			Update("deleted_at", now).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			r.log.Error("Failed to delete account",
				zap.Uint("user_id", id),
				zap.Error(err))
		}
		return err
	}

	r.log.Info("Account soft-deleted with dependents", zap.Uint("user_id", id))
	return nil
}
