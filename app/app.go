// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"venue-review-api/config"
	"venue-review-api/db"
	"venue-review-api/handler"
	"venue-review-api/logger"
	"venue-review-api/repository"
	"venue-review-api/router"
	"venue-review-api/service"
	"venue-review-api/storage"

	"github.com/redis/go-redis/v9"
)

// App is the fully wired API.
type App struct {
	DB     *sql.DB
	Router http.Handler
}

// New wires repositories, services and handlers together. redisClient may be nil
// to run without the category cache.
func New(cfg config.Config, database *sql.DB, redisClient *redis.Client, media *storage.MediaStore) *App {
	// Repositories
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	venueRepo := repository.NewVenueRepository(database)
	photoRepo := repository.NewPhotoRepository(database)
	reviewRepo := repository.NewReviewRepository(database)

	// A nil *redis.Client must not end up inside a non-nil interface.
	var cache service.ICacheClient
	if redisClient != nil {
		cache = redisClient
	}

	// Services
	authService := service.NewAuthService(userRepo, tokenRepo)
	userService := service.NewUserService(userRepo, authService, media)
	venueService := service.NewVenueService(venueRepo, photoRepo, cache, cfg.Redis.CategoriesTTL)
	photoService := service.NewPhotoService(database, venueRepo, photoRepo, media)
	reviewService := service.NewReviewService(reviewRepo, venueRepo, userRepo)

	handlers := router.Handlers{
		Auth:    handler.NewAuthMiddleware(authService),
		Health:  handler.NewHealthHandler(database),
		Users:   handler.NewUserHandler(userService, authService),
		Venues:  handler.NewVenueHandler(venueService),
		Photos:  handler.NewPhotoHandler(photoService),
		Reviews: handler.NewReviewHandler(reviewService),
	}
	r := router.NewRouter(handlers, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LoginRequests:  cfg.RateLimit.LoginRequests,
		LoginWindow:    cfg.RateLimit.LoginWindow,
	})

	return &App{DB: database, Router: r}
}

func Run() {
	logger.Init()
	if err := config.LoadConfig("."); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	cfg := config.AppConfig
	logger.SetLevel(cfg.Log.Level)
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if cfg.Database.Migrate {
		if err := db.RunMigrations(cfg.Database.MigrationsPath, cfg.DatabaseURL()); err != nil {
			logger.Log.Fatalf("Error running migrations: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = db.ConnectRedis(context.Background())
		if err != nil {
			logger.Log.Fatalf("Error connecting to redis: %v", err)
		}
		defer redisClient.Close()
	}

	media, err := storage.NewOSMediaStore(cfg.Media.Root)
	if err != nil {
		logger.Log.Fatalf("Error preparing media storage: %v", err)
	}

	application := New(cfg, database, redisClient, media)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
