package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizpulse/quizpulse-api/internal/dto"
	"github.com/quizpulse/quizpulse-api/internal/models"
)

// AttemptRepository defines data operations for the historical attempt store.
type AttemptRepository interface {
	List(ctx context.Context) ([]models.Attempt, error)
	ReplaceAll(ctx context.Context, attempts []models.Attempt) error
	Count(ctx context.Context) (int64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) List(ctx context.Context) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := r.db.WithContext(ctx).
		Preload("Questions").
		Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

// ReplaceAll swaps the stored corpus for the given snapshot in one
// transaction, so readers never see a half-imported corpus.
func (r *attemptRepository) ReplaceAll(ctx context.Context, attempts []models.Attempt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Attempt{}).Error; err != nil {
			return err
		}

		if len(attempts) == 0 {
			return nil
		}
		return tx.Create(&attempts).Error
	})
}

func (r *attemptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Attempt{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// AttemptsFromEntries converts wire entries into storable attempts, coercing
// flexible score fields and defaulting a missing final score to the score.
func AttemptsFromEntries(entries []dto.HistoricalEntry) []models.Attempt {
	attempts := make([]models.Attempt, 0, len(entries))
	for _, entry := range entries {
		attempt := models.Attempt{
			Topic:          entry.Quiz.Topic,
			Score:          entry.ScoreValue(),
			FinalScore:     entry.FinalScoreValue(),
			TotalQuestions: entry.Quiz.TotalQuestions,
		}
		for _, question := range entry.Quiz.Questions {
			attempt.Questions = append(attempt.Questions, models.Question{
				QuestionID: string(question.QuestionID),
				Topic:      question.Topic,
			})
		}
		attempts = append(attempts, attempt)
	}

	return attempts
}

// EntriesFromAttempts converts stored attempts back into the wire shape the
// feedback pipeline consumes.
func EntriesFromAttempts(attempts []models.Attempt) []dto.HistoricalEntry {
	entries := make([]dto.HistoricalEntry, 0, len(attempts))
	for _, attempt := range attempts {
		score := dto.FlexFloat(attempt.Score)
		finalScore := dto.FlexFloat(attempt.FinalScore)

		entry := dto.HistoricalEntry{
			Quiz: dto.HistoricalQuiz{
				Topic:          attempt.Topic,
				TotalQuestions: attempt.TotalQuestions,
			},
			Score:      &score,
			FinalScore: &finalScore,
		}
		for _, question := range attempt.Questions {
			entry.Quiz.Questions = append(entry.Quiz.Questions, dto.HistoricalQuestion{
				QuestionID: dto.FlexString(question.QuestionID),
				Topic:      question.Topic,
			})
		}
		entries = append(entries, entry)
	}

	return entries
}
