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

// CafeHandler serves café CRUD and listing.
type CafeHandler struct {
	cafes     *service.CafeService
	validator *middleware.Validator
	log       *zap.Logger
}

func NewCafeHandler(cafes *service.CafeService, validator *middleware.Validator, log *zap.Logger) *CafeHandler {
	return &CafeHandler{cafes: cafes, validator: validator, log: log}
}

// List handles GET /api/cafes with page/limit/search query parameters.
func (h *CafeHandler) List(c *gin.Context) {
	params := constants.ParsePaginationParams(c)

	cafes, total, err := h.cafes.List(c.Request.Context(), params.Limit, params.Offset, params.Search)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	pageTotal := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, pageTotal, cafes))
}

// Get handles GET /api/cafes/:cafeId. Each read bumps the view counter.
func (h *CafeHandler) Get(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}

	cafe, err := h.cafes.Get(c.Request.Context(), cafeID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, cafe)
}

// Create handles POST /api/cafes.
func (h *CafeHandler) Create(c *gin.Context) {
	var req dto.CreateCafeRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	cafe, err := h.cafes.Create(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Cafe creation failed",
			zap.String("name", req.Name),
			zap.Error(err))
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusCreated, cafe)
}

// Update handles PATCH /api/cafes/:cafeId.
func (h *CafeHandler) Update(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}

	var req dto.UpdateCafeRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	cafe, err := h.cafes.Update(c.Request.Context(), cafeID, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, cafe)
}

// Delete handles DELETE /api/cafes/:cafeId.
func (h *CafeHandler) Delete(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}

	if err := h.cafes.Delete(c.Request.Context(), cafeID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.Status(http.StatusNoContent)
}
