package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/zzincafe/zzincafe-server/config"
	"github.com/zzincafe/zzincafe-server/internal/handler"
	"github.com/zzincafe/zzincafe-server/internal/middleware"
	"github.com/zzincafe/zzincafe-server/internal/repository"
	"github.com/zzincafe/zzincafe-server/internal/router"
	"github.com/zzincafe/zzincafe-server/internal/service"
	"github.com/zzincafe/zzincafe-server/pkg/database"
	"github.com/zzincafe/zzincafe-server/pkg/logger"
	"github.com/zzincafe/zzincafe-server/pkg/mailer"
	"github.com/zzincafe/zzincafe-server/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Environment: config.App.Environment,
		Debug:       config.App.Debug,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment))

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrated successfully")

	redisClient, err := redis.NewClient(redis.Config{
		Addr:         config.RedisAddress(),
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolTimeout:  config.Redis.PoolTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, log)
	authEmailRepo := repository.NewAuthEmailRepository(db, log)
	cafeRepo := repository.NewCafeRepository(db, log)
	reviewRepo := repository.NewReviewRepository(db, log)

	// Services
	mail := mailer.NewMailer(mailer.Config{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		Username: config.SMTP.Username,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
	}, log)
	tokenService := service.NewTokenService(authEmailRepo, config.Token.TTL, log)
	sessionService := service.NewSessionService(redisClient, config.Session.TTL, log)
	userService := service.NewUserService(userRepo, tokenService, sessionService, mail,
		config.Token.ResetLinkBase, log)
	cafeService := service.NewCafeService(cafeRepo, reviewRepo, log)
	reviewService := service.NewReviewService(reviewRepo, cafeRepo, log)

	// Middleware and handlers
	validator := middleware.NewValidator(log)
	sessionMw := middleware.NewSessionMiddleware(sessionService, config.Session.CookieName, log)

	cookie := handler.CookieOptions{
		Name:      config.Session.CookieName,
		Domain:    config.Session.CookieDomain,
		Secure:    config.Session.Secure,
		MaxAgeSec: int(config.Session.TTL.Seconds()),
	}
	authHandler := handler.NewAuthHandler(userService, validator, cookie, log)
	userHandler := handler.NewUserHandler(userService, validator, cookie, log)
	cafeHandler := handler.NewCafeHandler(cafeService, validator, log)
	reviewHandler := handler.NewReviewHandler(reviewService, validator, log)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	appRouter := router.NewRouter(
		authHandler, userHandler, cafeHandler, reviewHandler, healthHandler,
		validator, sessionMw, config, log,
	)

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           appRouter.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("port", config.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
