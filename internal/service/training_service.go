package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/datastore"
	"github.com/quizpulse/quizpulse-api/internal/dto"
	"github.com/quizpulse/quizpulse-api/internal/ml"
	"github.com/quizpulse/quizpulse-api/internal/repository"
)

// ModelTrainedSubject is the NATS subject training completions are announced
// on.
const ModelTrainedSubject = "quizpulse.model.trained"

// TrainingService runs the offline training batch: fit encoder and forest on
// the historical corpus, then persist the artifact atomically.
type TrainingService interface {
	Train(ctx context.Context) (dto.TrainingSummary, error)
}

type trainingService struct {
	attempts  repository.AttemptRepository
	files     *datastore.FileStore
	modelPath string
	forestCfg ml.ForestConfig
	events    *nats.Conn
	logger    zerolog.Logger
}

// NewTrainingService builds the trainer. The attempt repository and events
// connection may be nil.
func NewTrainingService(attempts repository.AttemptRepository, files *datastore.FileStore, modelPath string, forestCfg ml.ForestConfig, events *nats.Conn, logger zerolog.Logger) TrainingService {
	return &trainingService{
		attempts:  attempts,
		files:     files,
		modelPath: modelPath,
		forestCfg: forestCfg,
		events:    events,
		logger:    logger.With().Str("component", "training_service").Logger(),
	}
}

func (s *trainingService) Train(ctx context.Context) (dto.TrainingSummary, error) {
	corpus := s.loadCorpus(ctx)
	if len(corpus) == 0 {
		return dto.TrainingSummary{}, fmt.Errorf("no historical data available for training")
	}

	result, err := ml.Train(corpus, s.forestCfg)
	if err != nil {
		return dto.TrainingSummary{}, fmt.Errorf("training failed: %w", err)
	}

	// Persisting is the only fatal path: a model that cannot be saved must
	// abort the run rather than leave a silent partial artifact.
	if err := ml.SaveModel(s.modelPath, result.Model); err != nil {
		return dto.TrainingSummary{}, err
	}

	summary := dto.TrainingSummary{
		Samples:   result.Samples,
		Positives: result.Positives,
		Topics:    result.Model.Encoder.Len(),
		ModelPath: s.modelPath,
	}

	s.publishTrained(summary)
	s.logger.Info().
		Int("samples", summary.Samples).
		Int("positives", summary.Positives).
		Int("topics", summary.Topics).
		Str("model_path", summary.ModelPath).
		Msg("model training completed")

	return summary, nil
}

func (s *trainingService) loadCorpus(ctx context.Context) []dto.HistoricalEntry {
	if s.attempts != nil {
		attempts, err := s.attempts.List(ctx)
		if err == nil && len(attempts) > 0 {
			return repository.EntriesFromAttempts(attempts)
		}
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to load attempts from store, falling back to file")
		}
	}

	return s.files.LoadHistorical()
}

func (s *trainingService) publishTrained(summary dto.TrainingSummary) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.events.Publish(ModelTrainedSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish model trained event")
	}
}
