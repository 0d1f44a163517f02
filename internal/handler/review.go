package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/middleware"
	"github.com/zzincafe/zzincafe-server/internal/service"
)

// ReviewHandler serves reviews and likes on cafés.
type ReviewHandler struct {
	reviews   *service.ReviewService
	validator *middleware.Validator
	log       *zap.Logger
}

func NewReviewHandler(reviews *service.ReviewService, validator *middleware.Validator, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, validator: validator, log: log}
}

// ListByCafe handles GET /api/cafes/:cafeId/reviews.
func (h *ReviewHandler) ListByCafe(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}
	params := constants.ParsePaginationParams(c)

	reviews, total, err := h.reviews.ListByCafe(c.Request.Context(), cafeID, params.Limit, params.Offset)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, reviews))
}

// Create handles POST /api/cafes/:cafeId/reviews.
func (h *ReviewHandler) Create(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	var req dto.CreateReviewRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), cafeID, userID, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update handles PATCH /api/reviews/:reviewId. Only the author may edit.
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	var req dto.UpdateReviewRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), reviewID, userID, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /api/reviews/:reviewId. Only the author may delete.
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), reviewID, userID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Like handles POST /api/cafes/:cafeId/like.
func (h *ReviewHandler) Like(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	resp, err := h.reviews.Like(c.Request.Context(), cafeID, userID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LikeStatus handles GET /api/cafes/:cafeId/like.
func (h *ReviewHandler) LikeStatus(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	resp, err := h.reviews.LikeStatus(c.Request.Context(), cafeID, userID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Unlike handles DELETE /api/cafes/:cafeId/like.
func (h *ReviewHandler) Unlike(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return
	}

	resp, err := h.reviews.Unlike(c.Request.Context(), cafeID, userID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}
