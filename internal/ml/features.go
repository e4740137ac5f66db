package ml

import (
	"gonum.org/v1/gonum/stat"

	"github.com/quizpulse/quizpulse-api/internal/dto"
)

// featureCount is the fixed width of every feature vector:
// [encoded topic, current points, scale, historical topic average].
const featureCount = 4

// InferenceVector builds the feature vector for the attempt currently being
// graded. The current quiz feed exposes total_score and score, which fill the
// magnitude and scale slots on this path.
func InferenceVector(quiz dto.QuizInfo, corpus []dto.HistoricalEntry, encoder *TopicEncoder) []float64 {
	return []float64{
		float64(encoder.Encode(quiz.Topic)),
		quiz.TotalScore.Float64(),
		quiz.Score.Float64(),
		TopicAverage(corpus, quiz.Topic),
	}
}

// trainingVector builds the feature vector for one historical attempt. The
// historical feed exposes score and total_questions instead, so those fill
// the same two slots on the training path.
func trainingVector(entry dto.HistoricalEntry, corpus []dto.HistoricalEntry, encoder *TopicEncoder) []float64 {
	return []float64{
		float64(encoder.Encode(entry.Quiz.Topic)),
		entry.ScoreValue(),
		float64(entry.Quiz.TotalQuestions),
		TopicAverage(corpus, entry.Quiz.Topic),
	}
}

// TopicAverage returns the mean score across historical entries for the given
// topic, or 0 when the topic has no scored history. Entries without a topic
// never contribute.
func TopicAverage(corpus []dto.HistoricalEntry, topic string) float64 {
	if topic == "" {
		return 0
	}

	var scores []float64
	for _, entry := range corpus {
		if entry.Quiz.Topic != topic || entry.Score == nil {
			continue
		}
		scores = append(scores, entry.ScoreValue())
	}

	if len(scores) == 0 {
		return 0
	}

	return stat.Mean(scores, nil)
}

// HistoricalAverage returns the mean score across every scored historical
// entry, or 0 for an empty or unscored corpus.
func HistoricalAverage(corpus []dto.HistoricalEntry) float64 {
	scores := HistoricalScores(corpus)
	if len(scores) == 0 {
		return 0
	}

	return stat.Mean(scores, nil)
}

// HistoricalScores collects the scores of every entry that exposes one, in
// corpus order. The result feeds the performance chart.
func HistoricalScores(corpus []dto.HistoricalEntry) []float64 {
	scores := make([]float64, 0, len(corpus))
	for _, entry := range corpus {
		if entry.Score == nil {
			continue
		}
		scores = append(scores, entry.ScoreValue())
	}

	return scores
}
