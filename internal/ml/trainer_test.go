package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quizpulse/quizpulse-api/internal/dto"
)

func trainingEntry(topic string, score, finalScore float64, totalQuestions int) dto.HistoricalEntry {
	s := dto.FlexFloat(score)
	f := dto.FlexFloat(finalScore)
	return dto.HistoricalEntry{
		Quiz:       dto.HistoricalQuiz{Topic: topic, TotalQuestions: totalQuestions},
		Score:      &s,
		FinalScore: &f,
	}
}

func TestLabelThreshold(t *testing.T) {
	require.Equal(t, 1, Label(7.5, 10))
	require.Equal(t, 1, Label(10, 10))
	require.Equal(t, 0, Label(7.4, 10))
	require.Equal(t, 0, Label(0, 10))
}

func TestLabelZeroQuestionsIsNegativeByPolicy(t *testing.T) {
	require.Equal(t, 0, Label(100, 0))
	require.Equal(t, 0, Label(100, -3))
}

func TestTrainBuildsUsableModel(t *testing.T) {
	var corpus []dto.HistoricalEntry
	for i := 0; i < 8; i++ {
		corpus = append(corpus, trainingEntry("Algebra", 90, 9, 10))
		corpus = append(corpus, trainingEntry("Biology", 20, 2, 10))
	}

	result, err := Train(corpus, ForestConfig{Trees: 50, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, 16, result.Samples)
	require.Equal(t, 8, result.Positives)
	require.Equal(t, 2, result.Model.Encoder.Len())
	require.NotNil(t, result.Model.Forest)
	require.False(t, result.Model.TrainedAt.IsZero())
}

func TestTrainEmptyCorpus(t *testing.T) {
	_, err := Train(nil, ForestConfig{})
	require.Error(t, err)
}

func TestTrainHandlesStringFinalScores(t *testing.T) {
	raw := `[
		{"quiz": {"topic": "Algebra", "total_questions": 10}, "score": 90, "final_score": "9.0"},
		{"quiz": {"topic": "Algebra", "total_questions": 10}, "score": 20, "final_score": "not-a-number"}
	]`
	var corpus []dto.HistoricalEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &corpus))

	// The malformed final score coerces to 0, so only the first entry passes
	// the threshold.
	require.Equal(t, 1, Label(corpus[0].FinalScoreValue(), corpus[0].Quiz.TotalQuestions))
	require.Equal(t, 0, Label(corpus[1].FinalScoreValue(), corpus[1].Quiz.TotalQuestions))

	result, err := Train(corpus, ForestConfig{Trees: 10, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 2, result.Samples)
	require.Equal(t, 1, result.Positives)
}

func TestTrainFallsBackToScoreWhenFinalScoreMissing(t *testing.T) {
	raw := `[{"quiz": {"topic": "Algebra", "total_questions": 10}, "score": 8}]`
	var corpus []dto.HistoricalEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &corpus))

	result, err := Train(corpus, ForestConfig{Trees: 5, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 1, result.Positives)
}

func TestTrainTopicsMissingFromSomeEntries(t *testing.T) {
	score := dto.FlexFloat(50)
	corpus := []dto.HistoricalEntry{
		trainingEntry("Algebra", 90, 9, 10),
		{Quiz: dto.HistoricalQuiz{TotalQuestions: 10}, Score: &score},
	}

	result, err := Train(corpus, ForestConfig{Trees: 5, Seed: 1})
	require.NoError(t, err)
	require.Equal(t, 1, result.Model.Encoder.Len())
	require.Equal(t, 2, result.Samples)
}
