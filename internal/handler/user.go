package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	"github.com/zzincafe/zzincafe-server/internal/dto"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/middleware"
	"github.com/zzincafe/zzincafe-server/internal/service"
)

// UserHandler serves profile reads/updates, password reset completion and
// account deletion.
type UserHandler struct {
	users        *service.UserService
	validator    *middleware.Validator
	cookieName   string
	cookieDomain string
	secure       bool
	log          *zap.Logger
}

func NewUserHandler(users *service.UserService, validator *middleware.Validator, cookie CookieOptions, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users:        users,
		validator:    validator,
		cookieName:   cookie.Name,
		cookieDomain: cookie.Domain,
		secure:       cookie.Secure,
		log:          log,
	}
}

// GetProfile handles GET /api/users/:userId.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PATCH /api/users/:userId. Only the account owner may
// update.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.ownedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CompletePasswordReset handles PATCH /api/users/:userId/password/:token.
// The token comes from the reset mail; the session cookie is optional but
// ends if present.
func (h *UserHandler) CompletePasswordReset(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	token := c.Param("token")

	var req dto.ChangePasswordRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	sessionID := middleware.CurrentSessionID(c)
	if err := h.users.CompletePasswordReset(c.Request.Context(), userID, token, req, sessionID); err != nil {
		h.log.Warn("Password reset failed",
			zap.Uint("user_id", userID),
			zap.Error(err))
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	if sessionID != "" {
		c.SetCookie(h.cookieName, "", -1, "/", h.cookieDomain, h.secure, true)
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("password updated"))
}

// DeleteAccount handles DELETE /api/users/:userId. Only the account owner
// may delete; the user, their likes and their reviews go together.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := h.ownedUserID(c)
	if !ok {
		return
	}

	sessionID := middleware.CurrentSessionID(c)
	if err := h.users.DeleteAccount(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", h.cookieDomain, h.secure, true)
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("account deleted"))
}

// ownedUserID parses the userId path parameter and checks it against the
// session's user.
func (h *UserHandler) ownedUserID(c *gin.Context) (uint, bool) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return 0, false
	}

	sessionUser, ok := middleware.CurrentUserID(c)
	if !ok || sessionUser != userID {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized))
		return 0, false
	}
	return userID, true
}

// parseIDParam parses an integer path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(
			apperrors.NewValidationError(apperrors.FieldViolation{
				Location: "param",
				Field:    name,
				Message:  name + " must be a positive integer",
			})))
		return 0, false
	}
	return uint(id), true
}
