package ml

import (
	"fmt"
	"time"

	"github.com/quizpulse/quizpulse-api/internal/dto"
)

// passThreshold is the final-score ratio above which an attempt counts as a
// positive training example.
const passThreshold = 0.75

// TrainingResult carries the fitted model together with dataset statistics.
type TrainingResult struct {
	Model     *Model
	Samples   int
	Positives int
}

// Train fits the topic encoder and the decision forest on the historical
// corpus. Entries with malformed fields contribute degraded feature values
// rather than aborting the run; only an empty corpus is an error.
func Train(corpus []dto.HistoricalEntry, cfg ForestConfig) (*TrainingResult, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("no historical data available for training")
	}

	topics := make([]string, 0, len(corpus))
	for _, entry := range corpus {
		topics = append(topics, entry.Quiz.Topic)
	}
	encoder := FitTopicEncoder(topics)

	features := make([][]float64, 0, len(corpus))
	labels := make([]int, 0, len(corpus))
	positives := 0

	for _, entry := range corpus {
		features = append(features, trainingVector(entry, corpus, encoder))

		label := Label(entry.FinalScoreValue(), entry.Quiz.TotalQuestions)
		labels = append(labels, label)
		if label == 1 {
			positives++
		}
	}

	forest, err := TrainForest(features, labels, cfg)
	if err != nil {
		return nil, err
	}

	return &TrainingResult{
		Model: &Model{
			Encoder:   encoder,
			Forest:    forest,
			TrainedAt: time.Now().UTC(),
		},
		Samples:   len(features),
		Positives: positives,
	}, nil
}

// Label derives the binary training target from the pass threshold. Attempts
// without questions are negative by policy, never a division.
func Label(finalScore float64, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}

	if finalScore/float64(totalQuestions) >= passThreshold {
		return 1
	}
	return 0
}
