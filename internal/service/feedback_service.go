package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quizpulse/quizpulse-api/internal/datastore"
	"github.com/quizpulse/quizpulse-api/internal/dto"
	"github.com/quizpulse/quizpulse-api/internal/ml"
	"github.com/quizpulse/quizpulse-api/internal/observability"
	"github.com/quizpulse/quizpulse-api/internal/repository"
)

// Accuracy band boundaries for the performance level and the tiered
// recommendation sentence.
const (
	goodAccuracyThreshold     = 75.0
	progressAccuracyThreshold = 50.0
)

// FeedbackService scores the current attempt against the learner's history
// and produces the structured feedback payload.
type FeedbackService interface {
	Results(ctx context.Context) (dto.ResultsResponse, error)
}

type feedbackService struct {
	attempts  repository.AttemptRepository
	files     *datastore.FileStore
	modelPath string
	cache     *redis.Client
	cacheTTL  time.Duration
	validate  *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewFeedbackService builds the feedback generator. The attempt repository
// and cache may be nil; the service then falls back to file inputs and
// uncached responses.
func NewFeedbackService(attempts repository.AttemptRepository, files *datastore.FileStore, modelPath string, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		attempts:  attempts,
		files:     files,
		modelPath: modelPath,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validate:  validate,
		logger:    logger.With().Str("component", "feedback_service").Logger(),
		tracer:    otel.Tracer("github.com/quizpulse/quizpulse-api/internal/service/feedback"),
	}
}

func (s *feedbackService) Results(ctx context.Context) (dto.ResultsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "feedback.generate")
	defer span.End()

	quiz := s.files.LoadQuiz()
	submission := s.files.LoadSubmission()
	corpus := s.loadCorpus(ctx)

	if err := s.validate.Struct(submission); err != nil {
		s.logger.Warn().Err(err).Msg("submission failed validation, continuing with raw values")
	}

	span.SetAttributes(
		attribute.String("feedback.topic", quiz.Quiz.Topic),
		attribute.Int("feedback.corpus_size", len(corpus)),
	)

	cacheKey := resultsCacheKey(quiz, submission, corpus)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ResultsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("cache_key", cacheKey).Msg("feedback cache hit")
				span.SetAttributes(attribute.Bool("feedback.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read feedback cache")
		}
	}

	model, err := ml.LoadModel(s.modelPath)
	if err != nil {
		if !errors.Is(err, ml.ErrNoModel) {
			return dto.ResultsResponse{}, err
		}
		s.logger.Info().Str("path", s.modelPath).Msg("no trained model, serving degraded predictions")
		model = nil
	}
	span.SetAttributes(attribute.Bool("feedback.model_loaded", model != nil))

	feedback, recommendations, outcome := s.buildFeedback(quiz, submission, corpus, model)
	observability.ModelPredictions().WithLabelValues(outcome).Inc()

	response := dto.ResultsResponse{
		Feedback:         feedback,
		Recommendations:  recommendations,
		MistakesByTopic:  mistakesByTopic(submission, corpus),
		HistoricalScores: ml.HistoricalScores(corpus),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store feedback cache")
			}
		}
	}

	return response, nil
}

// loadCorpus prefers the attempt store and falls back to the historical JSON
// file, then to an empty corpus.
func (s *feedbackService) loadCorpus(ctx context.Context) []dto.HistoricalEntry {
	if s.attempts != nil {
		attempts, err := s.attempts.List(ctx)
		if err == nil {
			return repository.EntriesFromAttempts(attempts)
		}
		s.logger.Warn().Err(err).Msg("failed to load attempts from store, falling back to file")
	}

	return s.files.LoadHistorical()
}

// buildFeedback assembles the feedback record and the ordered recommendation
// list. The returned outcome labels the classifier branch for metrics.
func (s *feedbackService) buildFeedback(quiz dto.QuizData, submission dto.SubmissionData, corpus []dto.HistoricalEntry, model *ml.Model) (dto.FeedbackRecord, []string, string) {
	accuracy := 0.0
	if submission.TotalQuestions > 0 {
		accuracy = float64(submission.CorrectAnswers) / float64(submission.TotalQuestions) * 100
	}

	performanceLevel := dto.PerformanceLevelNeedsImprovement
	if accuracy >= goodAccuracyThreshold {
		performanceLevel = dto.PerformanceLevelGood
	}

	finalScore := submission.FinalScore.Float64()
	historicalAverage := ml.HistoricalAverage(corpus)

	// An exact tie counts as performing better, not lower.
	comparison := dto.ComparisonAboveAverage
	if finalScore < historicalAverage {
		comparison = dto.ComparisonBelowAverage
	}

	feedback := dto.FeedbackRecord{
		Accuracy:               accuracy,
		FinalScore:             finalScore,
		Score:                  finalScore,
		Mistakes:               submission.InitialMistakeCount - submission.MistakesCorrected,
		PerformanceLevel:       performanceLevel,
		HistoricalAverageScore: historicalAverage,
		HistoricalComparison:   comparison,
	}

	recommendations := make([]string, 0, 4)
	if submission.InitialMistakeCount > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"You made %d mistakes initially, but corrected %d. Keep focusing on those areas.",
			submission.InitialMistakeCount, submission.MistakesCorrected))
	}
	if submission.IncorrectAnswers > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"You got %d answers incorrect. Revise the topics where you had difficulty.",
			submission.IncorrectAnswers))
	}

	switch {
	case accuracy < progressAccuracyThreshold:
		recommendations = append(recommendations, "Focus on improving your accuracy. Consider reviewing the most difficult topics.")
	case accuracy < goodAccuracyThreshold:
		recommendations = append(recommendations, "You're making progress, but there are still areas to improve. Keep practicing.")
	default:
		recommendations = append(recommendations, "Great job! Continue reviewing to stay sharp.")
	}

	prediction := ml.NoModelMessage
	if model != nil {
		features := ml.InferenceVector(quiz.Quiz, corpus, model.Encoder)
		prediction = model.PredictMessage(features)
	}
	recommendations = append(recommendations, prediction)

	outcome := "no_model"
	switch prediction {
	case ml.DoingWellMessage:
		outcome = "positive"
	case ml.ReviewMessage:
		outcome = "negative"
	}

	return feedback, recommendations, outcome
}

// mistakesByTopic counts responses per topic by resolving each question id
// against the historical question lists. Unknown ids are skipped.
func mistakesByTopic(submission dto.SubmissionData, corpus []dto.HistoricalEntry) map[string]int {
	mistakes := make(map[string]int)

	for questionID := range submission.ResponseMap {
		topic := ""
		for _, entry := range corpus {
			for _, question := range entry.Quiz.Questions {
				if string(question.QuestionID) == questionID {
					topic = question.Topic
					break
				}
			}
		}

		if topic != "" {
			mistakes[topic]++
		}
	}

	return mistakes
}

// resultsCacheKey fingerprints the full input set so any change in quiz,
// submission or corpus produces a fresh computation.
func resultsCacheKey(quiz dto.QuizData, submission dto.SubmissionData, corpus []dto.HistoricalEntry) string {
	payload, err := json.Marshal(struct {
		Quiz       dto.QuizData          `json:"quiz"`
		Submission dto.SubmissionData    `json:"submission"`
		Corpus     []dto.HistoricalEntry `json:"corpus"`
	}{quiz, submission, corpus})
	if err != nil {
		return "feedback:results:unkeyed"
	}

	sum := sha256.Sum256(payload)
	return "feedback:results:" + hex.EncodeToString(sum[:8])
}
