package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/internal/constants"
	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
)

// RequestID assigns every request an id, honoring one supplied by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.CtxKeyRequestID, id)
		c.Header(constants.HeaderXRequestID, id)
		c.Next()
	}
}

// Logging routes gin's access log through zap.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			fields := []zap.Field{
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status_code", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP),
				zap.String("user_agent", param.Request.UserAgent()),
			}
			if id := param.Keys[constants.CtxKeyRequestID]; id != nil {
				fields = append(fields, zap.Any("request_id", id))
			}

			switch {
			case param.StatusCode >= http.StatusInternalServerError:
				log.Error("Request failed", fields...)
			case param.StatusCode >= http.StatusBadRequest:
				log.Warn("Request rejected", fields...)
			case param.Latency > 2*time.Second:
				log.Warn("Slow request", fields...)
			default:
				log.Info("Request completed", fields...)
			}

			if param.ErrorMessage != "" {
				log.Error("Request error",
					zap.String("error", param.ErrorMessage),
					zap.String("method", param.Method),
					zap.String("path", param.Path))
			}

			return ""
		},
		Output: io.Discard,
	})
}

// Recovery turns panics into INTERNAL_ERROR responses and logs the panic.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			constants.BuildErrorResponse(apperrors.ErrInternal))
	})
}
