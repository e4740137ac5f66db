package main

import (
	"context"
	"log"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/config"
	"github.com/quizpulse/quizpulse-api/internal/database"
	"github.com/quizpulse/quizpulse-api/internal/datastore"
	"github.com/quizpulse/quizpulse-api/internal/ml"
	"github.com/quizpulse/quizpulse-api/internal/models"
	"github.com/quizpulse/quizpulse-api/internal/repository"
	"github.com/quizpulse/quizpulse-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

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
	}

	var events *nats.Conn
	if cfg.NATSURL != "" {
		events, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to nats, training events will not be published")
		} else {
			defer events.Drain()
		}
	}

	files := datastore.NewFileStore(cfg.DataDir, logger)
	trainer := service.NewTrainingService(attemptRepo, files, cfg.ModelPath, ml.ForestConfig{
		Trees: cfg.ForestTrees,
		Seed:  cfg.ForestSeed,
	}, events, logger)

	summary, err := trainer.Train(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("training run failed")
		os.Exit(1)
	}

	logger.Info().
		Int("samples", summary.Samples).
		Int("positives", summary.Positives).
		Str("model_path", summary.ModelPath).
		Msg("model training completed and saved")
}
