package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/model"
)

type ReviewRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReviewRepository(db *gorm.DB, log *zap.Logger) *ReviewRepository {
	return &ReviewRepository{db: db, log: log}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	result := r.db.WithContext(ctx).Create(review)
	if result.Error != nil {
		r.log.Error("Failed to create review",
			zap.Uint("cafe_id", review.CafeID),
			zap.Uint("user_id", review.UserID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// GetByID returns the review with its author preloaded.
func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	result := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&review)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get review by ID",
				zap.Uint("review_id", id),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &review, nil
}

// ListByCafe returns live reviews newest first with the author preloaded for
// name and image.
func (r *ReviewRepository) ListByCafe(ctx context.Context, cafeID uint, limit, offset int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Review{}).Where("cafe_id = ?", cafeID)

	if err := query.Count(&total).Error; err != nil {
		r.log.Error("Failed to count reviews",
			zap.Uint("cafe_id", cafeID),
			zap.Error(err))
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		r.log.Error("Failed to fetch reviews",
			zap.Uint("cafe_id", cafeID),
			zap.Error(err))
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	result := r.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		r.log.Error("Failed to update review",
			zap.Uint("review_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete review",
			zap.Uint("review_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLiveLike returns the live like for a cafe/user pair, if any.
func (r *ReviewRepository) GetLiveLike(ctx context.Context, cafeID, userID uint) (*model.Like, error) {
	var like model.Like
	result := r.db.WithContext(ctx).
		Where("cafe_id = ? AND user_id = ?", cafeID, userID).
		First(&like)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get like",
				zap.Uint("cafe_id", cafeID),
				zap.Uint("user_id", userID),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &like, nil
}

// CreateLike inserts a fresh like row. The partial unique index on live rows
// is what actually enforces one live like per user and cafe; the service's
// pre-check is advisory.
func (r *ReviewRepository) CreateLike(ctx context.Context, like *model.Like) error {
	result := r.db.WithContext(ctx).Create(like)
	if result.Error != nil {
		r.log.Error("Failed to create like",
			zap.Uint("cafe_id", like.CafeID),
			zap.Uint("user_id", like.UserID),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}

// DeleteLike soft-deletes the live like for a cafe/user pair.
func (r *ReviewRepository) DeleteLike(ctx context.Context, cafeID, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("cafe_id = ? AND user_id = ?", cafeID, userID).
		Delete(&model.Like{})
	if result.Error != nil {
		r.log.Error("Failed to delete like",
			zap.Uint("cafe_id", cafeID),
			zap.Uint("user_id", userID),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReviewRepository) CountLikes(ctx context.Context, cafeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("cafe_id = ?", cafeID).Count(&count).Error
	if err != nil {
		r.log.Error("Failed to count likes",
			zap.Uint("cafe_id", cafeID),
			zap.Error(err))
		return 0, err
	}
	return count, nil
}
