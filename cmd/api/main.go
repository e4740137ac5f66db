package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/config"
	"github.com/quizpulse/quizpulse-api/internal/database"
	"github.com/quizpulse/quizpulse-api/internal/datastore"
	"github.com/quizpulse/quizpulse-api/internal/handler"
	"github.com/quizpulse/quizpulse-api/internal/middleware"
	"github.com/quizpulse/quizpulse-api/internal/models"
	"github.com/quizpulse/quizpulse-api/internal/repository"
	"github.com/quizpulse/quizpulse-api/internal/router"
	"github.com/quizpulse/quizpulse-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Both stores are optional: without them the service degrades to file
	// inputs and uncached responses instead of refusing to start.
	var attemptRepo repository.AttemptRepository
	if cfg.DatabaseURL != "" {
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Attempt{}, &models.Question{}); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		attemptRepo = repository.NewAttemptRepository(db)
	} else {
		logger.Warn().Msg("no database configured, serving historical data from files")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("no redis configured, feedback responses will not be cached")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	files := datastore.NewFileStore(cfg.DataDir, logger)

	feedbackService := service.NewFeedbackService(attemptRepo, files, cfg.ModelPath, redisClient, cfg.FeedbackCacheTTL, validate, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		FeedbackHandler: feedbackHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
