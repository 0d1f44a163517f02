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

// AuthHandler serves registration, login and the email flows.
type AuthHandler struct {
	users        *service.UserService
	validator    *middleware.Validator
	cookieName   string
	cookieDomain string
	secure       bool
	sessionTTL   int
	log          *zap.Logger
}

// CookieOptions are the session cookie settings the handler writes.
type CookieOptions struct {
	Name      string
	Domain    string
	Secure    bool
	MaxAgeSec int
}

func NewAuthHandler(users *service.UserService, validator *middleware.Validator, cookie CookieOptions, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		validator:    validator,
		cookieName:   cookie.Name,
		cookieDomain: cookie.Domain,
		secure:       cookie.Secure,
		sessionTTL:   cookie.MaxAgeSec,
		log:          log,
	}
}

// Register handles POST /api/auth/local/new-user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Registration failed",
			zap.String("email", req.Email),
			zap.Error(err))
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CheckEmail handles POST /api/auth/local/property/email.
func (h *AuthHandler) CheckEmail(c *gin.Context) {
	var req dto.PropertyCheckRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	if err := h.users.CheckEmailAvailable(c.Request.Context(), req.Email); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("email is available"))
}

// CheckName handles POST /api/auth/local/property/name.
func (h *AuthHandler) CheckName(c *gin.Context) {
	var req dto.PropertyCheckRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	if err := h.users.CheckNameAvailable(c.Request.Context(), req.Name); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("name is available"))
}

// Login handles POST /api/auth/local. On success the session id is written
// into an httpOnly cookie; the body carries only the public profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	sessionID, resp, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("Login failed",
			zap.String("email", req.Email),
			zap.Error(err))
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	c.SetCookie(h.cookieName, sessionID, h.sessionTTL, "/", h.cookieDomain, h.secure, true)
	c.JSON(http.StatusOK, resp)
}

// Logout handles DELETE /api/auth/local. The session ends and the cookie is
// expired; logging out twice is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.CurrentSessionID(c)
	if err := h.users.Logout(c.Request.Context(), sessionID); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", h.cookieDomain, h.secure, true)
	c.Status(http.StatusNoContent)
}

// SendAuthEmail handles POST /api/auth/email.
func (h *AuthHandler) SendAuthEmail(c *gin.Context) {
	var req dto.SendAuthEmailRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	if err := h.users.SendVerificationEmail(c.Request.Context(), req.Email); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("verification email sent"))
}

// VerifyAuthEmail handles POST /api/auth/email-verify. The outcome is
// tri-state; a wrong or expired code is still a 200 with its status.
func (h *AuthHandler) VerifyAuthEmail(c *gin.Context) {
	var req dto.VerifyAuthEmailRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	result, err := h.users.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// RequestPasswordReset handles POST /api/auth/password-reset-email.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.SendAuthEmailRequest
	if err := h.validator.Bind(c, &req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}

	if err := h.users.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(err))
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("password reset email sent"))
}
