package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
	"github.com/zzincafe/zzincafe-server/internal/service"
)

// SessionMiddleware resolves the session cookie to a logged-in user.
type SessionMiddleware struct {
	sessions   *service.SessionService
	cookieName string
	log        *zap.Logger
}

func NewSessionMiddleware(sessions *service.SessionService, cookieName string, log *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName, log: log}
}

// RequireSession rejects requests without a live session. On success the
// user id and session id land in the gin context.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				constants.BuildErrorResponse(apperrors.ErrUnauthorized))
			return
		}

		userID, ok, err := m.sessions.Current(c.Request.Context(), sessionID)
		if err != nil {
			m.log.Error("Failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				constants.BuildErrorResponse(apperrors.ErrInternal))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				constants.BuildErrorResponse(apperrors.ErrUnauthorized))
			return
		}

		c.Set(constants.CtxKeyUserID, userID)
		c.Set(constants.CtxKeySessionID, sessionID)
		c.Next()
	}
}

// OptionalSession resolves the session if one exists but never rejects.
func (m *SessionMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err == nil && sessionID != "" {
			if userID, ok, err := m.sessions.Current(c.Request.Context(), sessionID); err == nil && ok {
				c.Set(constants.CtxKeyUserID, userID)
				c.Set(constants.CtxKeySessionID, sessionID)
			}
		}
		c.Next()
	}
}

// CurrentUserID reads the user id the session middleware stored.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.CtxKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentSessionID reads the session id the session middleware stored. Empty
// when the request carried no live session.
func CurrentSessionID(c *gin.Context) string {
	v, ok := c.Get(constants.CtxKeySessionID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
