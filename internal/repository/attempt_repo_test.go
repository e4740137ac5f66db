package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quizpulse/quizpulse-api/internal/dto"
	"github.com/quizpulse/quizpulse-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Attempt{}, &models.Question{}))

	return db
}

func TestAttemptRepositoryReplaceAllAndList(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	ctx := context.Background()

	attempts := []models.Attempt{
		{
			Topic:          "Algebra",
			Score:          60,
			FinalScore:     7,
			TotalQuestions: 10,
			Questions: []models.Question{
				{QuestionID: "q1", Topic: "Algebra"},
				{QuestionID: "q2", Topic: "Algebra"},
			},
		},
		{Topic: "Biology", Score: 40, FinalScore: 4, TotalQuestions: 10},
	}

	require.NoError(t, repo.ReplaceAll(ctx, attempts))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, "Algebra", stored[0].Topic)
	require.Len(t, stored[0].Questions, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	// A second import replaces the corpus instead of appending to it.
	require.NoError(t, repo.ReplaceAll(ctx, []models.Attempt{{Topic: "Chemistry", Score: 90}}))

	stored, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "Chemistry", stored[0].Topic)
}

func TestAttemptRepositoryReplaceAllEmptySnapshot(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []models.Attempt{{Topic: "Algebra"}}))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestAttemptConversionsRoundTrip(t *testing.T) {
	score := dto.FlexFloat(60)
	entries := []dto.HistoricalEntry{
		{
			Quiz: dto.HistoricalQuiz{
				Topic:          "Algebra",
				TotalQuestions: 10,
				Questions: []dto.HistoricalQuestion{
					{QuestionID: "q1", Topic: "Algebra"},
				},
			},
			Score: &score,
			// final_score omitted: falls back to score
		},
	}

	attempts := AttemptsFromEntries(entries)
	require.Len(t, attempts, 1)
	require.Equal(t, 60.0, attempts[0].Score)
	require.Equal(t, 60.0, attempts[0].FinalScore)
	require.Equal(t, 10, attempts[0].TotalQuestions)
	require.Len(t, attempts[0].Questions, 1)

	restored := EntriesFromAttempts(attempts)
	require.Len(t, restored, 1)
	require.Equal(t, "Algebra", restored[0].Quiz.Topic)
	require.Equal(t, 60.0, restored[0].ScoreValue())
	require.Equal(t, 60.0, restored[0].FinalScoreValue())
	require.Equal(t, dto.FlexString("q1"), restored[0].Quiz.Questions[0].QuestionID)
}
