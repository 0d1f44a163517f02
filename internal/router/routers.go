package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zzincafe/zzincafe-server/config"
	"github.com/zzincafe/zzincafe-server/internal/handler"
	"github.com/zzincafe/zzincafe-server/internal/middleware"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	cafeHandler   *handler.CafeHandler
	reviewHandler *handler.ReviewHandler
	healthHandler *handler.HealthHandler

	validator *middleware.Validator
	sessionMw *middleware.SessionMiddleware
	config    *config.Config
	log       *zap.Logger
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	cafe *handler.CafeHandler,
	review *handler.ReviewHandler,
	health *handler.HealthHandler,

	validator *middleware.Validator,
	sessionMw *middleware.SessionMiddleware,
	cfg *config.Config,
	log *zap.Logger,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		cafeHandler:   cafe,
		reviewHandler: review,
		healthHandler: health,

		validator: validator,
		sessionMw: sessionMw,
		config:    cfg,
		log:       log,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(r.log))
	router.Use(middleware.Recovery(r.log))
	router.Use(middleware.CORS(r.config.App.BaseURL))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		api.Use(middleware.RateLimit(
			r.config.RateLimit.Request,
			time.Duration(r.config.RateLimit.Duration)*time.Second,
			r.log,
		))

		r.authRoutes(api)
		r.userRoutes(api)
		r.cafeRoutes(api)
		r.reviewRoutes(api)
	}

	return router
}
