package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/model"
)

// ReviewStore is the persistence surface the review service needs.
type ReviewStore interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id uint) (*model.Review, error)
	ListByCafe(ctx context.Context, cafeID uint, limit, offset int) ([]model.Review, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
	GetLiveLike(ctx context.Context, cafeID, userID uint) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, cafeID, userID uint) error
	CountLikes(ctx context.Context, cafeID uint) (int64, error)
}

// CafeProbe checks that a café exists before anything is attached to it.
type CafeProbe interface {
	GetByID(ctx context.Context, id uint) (*model.Cafe, error)
}

// ReviewService implements reviews and likes on cafés. Editing and deleting
// a review is restricted to its author.
type ReviewService struct {
	reviews ReviewStore
	cafes   CafeProbe
	log     *zap.Logger
}

func NewReviewService(reviews ReviewStore, cafes CafeProbe, log *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, cafes: cafes, log: log}
}

func (s *ReviewService) Create(ctx context.Context, cafeID, userID uint, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := s.probeCafe(ctx, cafeID); err != nil {
		return nil, err
	}

	review := &model.Review{
		CafeID:  cafeID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.log.Info("Review created",
		zap.Uint("review_id", review.ID),
		zap.Uint("cafe_id", cafeID),
		zap.Uint("user_id", userID))

	// Re-fetch so the response carries the author's name and image.
	stored, err := s.reviews.GetByID(ctx, review.ID)
	if err != nil {
		s.log.Warn("Failed to reload review after create",
			zap.Uint("review_id", review.ID),
			zap.Error(err))
		stored = review
	}

	resp := toReviewResponse(stored)
	return &resp, nil
}

func (s *ReviewService) ListByCafe(ctx context.Context, cafeID uint, limit, offset int) ([]dto.ReviewResponse, int64, error) {
	if err := s.probeCafe(ctx, cafeID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := s.reviews.ListByCafe(ctx, cafeID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out, total, nil
}

// Update changes a review's content. Only the author may edit.
func (s *ReviewService) Update(ctx context.Context, reviewID, userID uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.getOwned(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.UpdateContent(ctx, reviewID, req.Content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	review.Content = req.Content
	resp := toReviewResponse(review)
	return &resp, nil
}

// Delete removes a review. Only the author may delete.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID uint) error {
	if _, err := s.getOwned(ctx, reviewID, userID); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// Like records a like on a café. A second like by the same user is an
// ALREADY_IN_USE error; the unique index backs up this check under races.
func (s *ReviewService) Like(ctx context.Context, cafeID, userID uint) (*dto.LikeResponse, error) {
	if err := s.probeCafe(ctx, cafeID); err != nil {
		return nil, err
	}

	if _, err := s.reviews.GetLiveLike(ctx, cafeID, userID); err == nil {
		return nil, apperrors.ErrAlreadyLiked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	like := &model.Like{CafeID: cafeID, UserID: userID}
	if err := s.reviews.CreateLike(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyLiked
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.likeResponse(ctx, cafeID, true)
}

// Unlike soft-deletes the live like. Unliking a café that was never liked is
// a NOT_FOUND error.
func (s *ReviewService) Unlike(ctx context.Context, cafeID, userID uint) (*dto.LikeResponse, error) {
	if err := s.probeCafe(ctx, cafeID); err != nil {
		return nil, err
	}

	if err := s.reviews.DeleteLike(ctx, cafeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLikeNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.likeResponse(ctx, cafeID, false)
}

// LikeStatus reports the café's like count and whether the user has a live
// like on it.
func (s *ReviewService) LikeStatus(ctx context.Context, cafeID, userID uint) (*dto.LikeResponse, error) {
	if err := s.probeCafe(ctx, cafeID); err != nil {
		return nil, err
	}

	liked := false
	if _, err := s.reviews.GetLiveLike(ctx, cafeID, userID); err == nil {
		liked = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return s.likeResponse(ctx, cafeID, liked)
}

func (s *ReviewService) likeResponse(ctx context.Context, cafeID uint, liked bool) (*dto.LikeResponse, error) {
	count, err := s.reviews.CountLikes(ctx, cafeID)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return &dto.LikeResponse{CafeID: cafeID, LikeCount: count, Liked: liked}, nil
}

func (s *ReviewService) probeCafe(ctx context.Context, cafeID uint) error {
	if _, err := s.cafes.GetByID(ctx, cafeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCafeNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

func (s *ReviewService) getOwned(ctx context.Context, reviewID, userID uint) (*model.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if review.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}
	return review, nil
}

func toReviewResponse(review *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:         review.ID,
		CafeID:     review.CafeID,
		Content:    review.Content,
		AuthorID:   review.UserID,
		AuthorName: review.User.Name,
		AuthorImg:  review.User.Image,
		CreatedAt:  review.CreatedAt,
		UpdatedAt:  review.UpdatedAt,
	}
}
