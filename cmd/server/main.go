package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/auth"
	"github.com/edhub-platform/school-service/internal/cache"
	"github.com/edhub-platform/school-service/internal/config"
	"github.com/edhub-platform/school-service/internal/handlers"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/repositories/postgres"
	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
	"github.com/edhub-platform/school-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService = cache.NoopCache{}
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	var m mailer.Mailer
	switch cfg.EmailProvider {
	case "sendgrid":
		m = mailer.NewSendgridMailer(cfg.SendgridKey, cfg.EmailFrom, cfg.EmailFromName, logger)
	default:
		m = mailer.NewConsoleMailer(logger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	validator := utils.NewValidator()
	repo := postgres.NewRepository(db)

	serviceManager := services.NewServiceManager(services.ManagerDeps{
		Repo:        repo,
		Logger:      logger,
		Validator:   validator,
		Cache:       cacheService,
		Mailer:      m,
		Publisher:   publisher,
		Tokens:      tokens,
		FrontendURL: cfg.FrontendURL,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, tokens, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
