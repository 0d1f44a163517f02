package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/model"
)

type AuthEmailRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuthEmailRepository(db *gorm.DB, log *zap.Logger) *AuthEmailRepository {
	return &AuthEmailRepository{db: db, log: log}
}

func (r *AuthEmailRepository) Create(ctx context.Context, record *model.AuthEmail) error {
	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		r.log.Error("Failed to store auth email code",
			zap.String("email", record.Email),
			zap.String("purpose", record.Purpose),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// GetLatestByEmail returns the most recently issued code for one email and
// purpose. Earlier codes stay in the table but lose; only the latest row is
// ever consulted.
func (r *AuthEmailRepository) GetLatestByEmail(ctx context.Context, email, purpose string) (*model.AuthEmail, error) {
	var record model.AuthEmail
	result := r.db.WithContext(ctx).
		Where("email = ? AND type = ?", email, purpose).
		Order("created_at DESC").
		First(&record)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get latest auth email code",
				zap.String("email", email),
				zap.String("purpose", purpose),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &record, nil
}

// GetByCode looks a code up directly; used by the reset flow where the link
// only carries the token.
func (r *AuthEmailRepository) GetByCode(ctx context.Context, code, purpose string) (*model.AuthEmail, error) {
	var record model.AuthEmail
	result := r.db.WithContext(ctx).
		Where("code = ? AND type = ?", code, purpose).
		Order("created_at DESC").
		First(&record)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get auth email code",
				zap.String("purpose", purpose),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &record, nil
}
