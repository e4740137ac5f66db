package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/config"
	"github.com/quizpulse/quizpulse-api/internal/database"
	"github.com/quizpulse/quizpulse-api/internal/dto"
	"github.com/quizpulse/quizpulse-api/internal/fetcher"
	"github.com/quizpulse/quizpulse-api/internal/models"
	"github.com/quizpulse/quizpulse-api/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	f, err := fetcher.New(cfg.DataDir, cfg.FetchTimeout, logger)
	if err != nil {
		log.Fatalf("failed to initialise fetcher: %v", err)
	}

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

	ctx := context.Background()
	failures := 0

	for _, src := range fetcher.Sources(cfg.QuizEndpoint, cfg.SubmissionEndpoint, cfg.HistoricalEndpoint) {
		payload, err := f.Fetch(ctx, src)
		if err != nil {
			logger.Error().Err(err).Str("source", src.Name).Msg("failed to retrieve data")
			failures++
			continue
		}

		if src.Name == "historical" && attemptRepo != nil {
			var entries []dto.HistoricalEntry
			if err := json.Unmarshal(payload, &entries); err != nil {
				logger.Warn().Err(err).Msg("failed to decode historical data, skipping import")
				continue
			}
			if err := attemptRepo.ReplaceAll(ctx, repository.AttemptsFromEntries(entries)); err != nil {
				logger.Error().Err(err).Msg("failed to import historical attempts")
				failures++
				continue
			}
			logger.Info().Int("attempts", len(entries)).Msg("historical attempts imported")
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}
