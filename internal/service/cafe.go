package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// CafeStore is the persistence surface the café service needs.
type CafeStore interface {
	Create(ctx context.Context, cafe *model.Cafe) error
	GetByID(ctx context.Context, id uint) (*model.Cafe, error)
	GetAll(ctx context.Context, limit, offset int, search string) ([]model.Cafe, int64, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	ReplaceMenus(ctx context.Context, cafeID uint, menus []model.Menu) error
	ReplaceOperatingHours(ctx context.Context, cafeID uint, hours []model.OperatingHour) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// LikeCounter resolves the like count shown on a café detail.
type LikeCounter interface {
	CountLikes(ctx context.Context, cafeID uint) (int64, error)
}

// CafeService implements café CRUD, listing and the view counter.
type CafeService struct {
	cafes CafeStore
	likes LikeCounter
	log   *zap.Logger
}

func NewCafeService(cafes CafeStore, likes LikeCounter, log *zap.Logger) *CafeService {
	return &CafeService{cafes: cafes, likes: likes, log: log}
}

func (s *CafeService) Create(ctx context.Context, req dto.CreateCafeRequest) (*dto.CafeDetailResponse, error) {
	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	cafe := &model.Cafe{
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Phone:          req.PhoneNumber,
		Images:         images,
		Menus:          toMenuModels(req.Menus),
		OperatingHours: toHourModels(req.OperatingHours),
	}

	if err := s.cafes.Create(ctx, cafe); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.toDetail(ctx, cafe)
}

// Get returns a café detail and bumps its view counter. The bump happens
// after the fetch; a café read concurrently may report a count that lags by
// the in-flight increments, never one that loses them.
func (s *CafeService) Get(ctx context.Context, id uint) (*dto.CafeDetailResponse, error) {
	cafe, err := s.cafes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCafeNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.cafes.IncrementViews(ctx, id); err != nil {
		s.log.Warn("Failed to increment view counter",
			zap.Uint("cafe_id", id),
			zap.Error(err))
	} else {
		cafe.Views++
	}

	return s.toDetail(ctx, cafe)
}

// List returns a page of café summaries, optionally filtered by a search
// string over name and address.
func (s *CafeService) List(ctx context.Context, limit, offset int, search string) ([]dto.CafeSummaryResponse, int64, error) {
	cafes, total, err := s.cafes.GetAll(ctx, limit, offset, search)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	summaries := make([]dto.CafeSummaryResponse, 0, len(cafes))
	for i := range cafes {
		summaries = append(summaries, dto.CafeSummaryResponse{
			ID:        cafes[i].ID,
			Name:      cafes[i].Name,
			Address:   cafes[i].Address,
			Latitude:  cafes[i].Latitude,
			Longitude: cafes[i].Longitude,
			Images:    decodeImages(cafes[i].Images),
			Views:     cafes[i].Views,
		})
	}
	return summaries, total, nil
}

func (s *CafeService) Update(ctx context.Context, id uint, req dto.UpdateCafeRequest) (*dto.CafeDetailResponse, error) {
	if _, err := s.cafes.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCafeNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.PhoneNumber != "" {
		updates["phone_number"] = req.PhoneNumber
	}
	if req.Images != nil {
		images, err := encodeImages(req.Images)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		updates["images"] = images
	}

	if err := s.cafes.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCafeNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.Menus != nil {
		if err := s.cafes.ReplaceMenus(ctx, id, toMenuModels(req.Menus)); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}
	if req.OperatingHours != nil {
		if err := s.cafes.ReplaceOperatingHours(ctx, id, toHourModels(req.OperatingHours)); err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	cafe, err := s.cafes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return s.toDetail(ctx, cafe)
}

func (s *CafeService) Delete(ctx context.Context, id uint) error {
	if err := s.cafes.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCafeNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (s *CafeService) toDetail(ctx context.Context, cafe *model.Cafe) (*dto.CafeDetailResponse, error) {
	likeCount, err := s.likes.CountLikes(ctx, cafe.ID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	menus := make([]dto.MenuResponse, 0, len(cafe.Menus))
	for i := range cafe.Menus {
		menus = append(menus, dto.MenuResponse{
			ID:    cafe.Menus[i].ID,
			Name:  cafe.Menus[i].Name,
			Price: cafe.Menus[i].Price,
		})
	}

	hours := make([]dto.OperatingHourResponse, 0, len(cafe.OperatingHours))
	for i := range cafe.OperatingHours {
		hours = append(hours, dto.OperatingHourResponse{
			DayOfWeek: cafe.OperatingHours[i].DayOfWeek,
			OpenTime:  cafe.OperatingHours[i].OpenTime,
			CloseTime: cafe.OperatingHours[i].CloseTime,
			Closed:    cafe.OperatingHours[i].Closed,
		})
	}

	return &dto.CafeDetailResponse{
		ID:             cafe.ID,
		Name:           cafe.Name,
		Address:        cafe.Address,
		Latitude:       cafe.Latitude,
		Longitude:      cafe.Longitude,
		PhoneNumber:    cafe.Phone,
		Images:         decodeImages(cafe.Images),
		Views:          cafe.Views,
		LikeCount:      likeCount,
		Menus:          menus,
		OperatingHours: hours,
		CreatedAt:      cafe.CreatedAt,
	}, nil
}

func toMenuModels(menus []dto.MenuRequest) []model.Menu {
	out := make([]model.Menu, 0, len(menus))
	for _, m := range menus {
		out = append(out, model.Menu{Name: m.Name, Price: m.Price})
	}
	return out
}

func toHourModels(hours []dto.OperatingHourRequest) []model.OperatingHour {
	out := make([]model.OperatingHour, 0, len(hours))
	for _, h := range hours {
		out = append(out, model.OperatingHour{
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			Closed:    h.Closed,
		})
	}
	return out
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if len(images) == 0 {
		return datatypes.JSON("[]"), nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeImages(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil
	}
	return images
}
