package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/model"
)

type CafeRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCafeRepository(db *gorm.DB, log *zap.Logger) *CafeRepository {
	return &CafeRepository{db: db, log: log}
}

// Create inserts the café together with its menus and operating hours. gorm
// wraps the association inserts in a single transaction, so the unit of work
// either lands whole or not at all.
func (r *CafeRepository) Create(ctx context.Context, cafe *model.Cafe) error {
	result := r.db.WithContext(ctx).Create(cafe)
	if result.Error != nil {
		r.log.Error("Failed to create cafe",
			zap.String("name", cafe.Name),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.log.Info("Cafe created",
		zap.Uint("cafe_id", cafe.ID),
		zap.String("name", cafe.Name),
		zap.Int("menus", len(cafe.Menus)),
		zap.Int("operating_hours", len(cafe.OperatingHours)))
	return nil
}

func (r *CafeRepository) GetByID(ctx context.Context, id uint) (*model.Cafe, error) {
	var cafe model.Cafe
	result := r.db.WithContext(ctx).
		Preload("Menus").
		Preload("OperatingHours").
		Where("id = ?", id).
		First(&cafe)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			r.log.Error("Failed to get cafe by ID",
				zap.Uint("cafe_id", id),
				zap.Error(result.Error))
		}
		return nil, result.Error
	}
	return &cafe, nil
}

func (r *CafeRepository) GetAll(ctx context.Context, limit, offset int, search string) ([]model.Cafe, int64, error) {
	var cafes []model.Cafe
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Cafe{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		r.log.Error("Failed to count cafes", zap.Error(err))
		return nil, 0, err
	}

	if err := query.Limit(limit).Offset(offset).Order("id").Find(&cafes).Error; err != nil {
		r.log.Error("Failed to fetch cafes",
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.String("search", search),
			zap.Error(err))
		return nil, 0, err
	}

	return cafes, total, nil
}

func (r *CafeRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&model.Cafe{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.log.Error("Failed to update cafe",
			zap.Uint("cafe_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceMenus swaps out the full menu list in one transaction.
func (r *CafeRepository) ReplaceMenus(ctx context.Context, cafeID uint, menus []model.Menu) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cafe_id = ?", cafeID).Delete(&model.Menu{}).Error; err != nil {
			return err
		}
		for i := range menus {
			menus[i].CafeID = cafeID
		}
		if len(menus) == 0 {
			return nil
		}
		return tx.Create(&menus).Error
	})
}

// ReplaceOperatingHours swaps out the weekly schedule in one transaction.
func (r *CafeRepository) ReplaceOperatingHours(ctx context.Context, cafeID uint, hours []model.OperatingHour) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cafe_id = ?", cafeID).Delete(&model.OperatingHour{}).Error; err != nil {
			return err
		}
		for i := range hours {
			hours[i].CafeID = cafeID
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}

func (r *CafeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Cafe{}, id)
	if result.Error != nil {
		r.log.Error("Failed to delete cafe",
			zap.Uint("cafe_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.log.Info("Cafe soft-deleted", zap.Uint("cafe_id", id))
	return nil
}

// IncrementViews bumps the view counter atomically in the store, so
// concurrent reads never lose an increment.
func (r *CafeRepository) IncrementViews(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Cafe{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		r.log.Error("Failed to increment cafe views",
			zap.Uint("cafe_id", id),
			zap.Error(result.Error))
		return result.Error
	}
	return nil
}
