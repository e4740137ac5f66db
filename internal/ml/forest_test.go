package ml

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func separableSamples() ([][]float64, []int) {
	var features [][]float64
	var labels []int
	for i := 0; i < 10; i++ {
		features = append(features, []float64{0, 90, 100, 85})
		labels = append(labels, 1)
		features = append(features, []float64{1, 20, 100, 30})
		labels = append(labels, 0)
	}
	return features, labels
}

func TestTrainForestFitsSeparableData(t *testing.T) {
	features, labels := separableSamples()

	forest, err := TrainForest(features, labels, ForestConfig{Trees: 50, Seed: 42})
	require.NoError(t, err)
	require.Len(t, forest.Trees, 50)

	require.Equal(t, 1, forest.Predict([]float64{0, 90, 100, 85}))
	require.Equal(t, 0, forest.Predict([]float64{1, 20, 100, 30}))
}

func TestTrainForestReproducibleWithSameSeed(t *testing.T) {
	features, labels := separableSamples()

	first, err := TrainForest(features, labels, ForestConfig{Trees: 10, Seed: 7})
	require.NoError(t, err)
	second, err := TrainForest(features, labels, ForestConfig{Trees: 10, Seed: 7})
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, firstJSON, secondJSON)
}

func TestTrainForestRejectsEmptyDataset(t *testing.T) {
	_, err := TrainForest(nil, nil, ForestConfig{})
	require.Error(t, err)
}

func TestTrainForestRejectsMismatchedLabels(t *testing.T) {
	_, err := TrainForest([][]float64{{1, 2, 3, 4}}, []int{0, 1}, ForestConfig{})
	require.Error(t, err)
}

func TestForestSurvivesSerialisation(t *testing.T) {
	features, labels := separableSamples()

	forest, err := TrainForest(features, labels, ForestConfig{Trees: 20, Seed: 3})
	require.NoError(t, err)

	payload, err := json.Marshal(forest)
	require.NoError(t, err)

	var restored Forest
	require.NoError(t, json.Unmarshal(payload, &restored))

	require.Equal(t, forest.Predict([]float64{0, 90, 100, 85}), restored.Predict([]float64{0, 90, 100, 85}))
	require.Equal(t, forest.Predict([]float64{1, 20, 100, 30}), restored.Predict([]float64{1, 20, 100, 30}))
}

func TestNilForestPredictsNegative(t *testing.T) {
	var forest *Forest
	require.Equal(t, 0, forest.Predict([]float64{0, 0, 0, 0}))
}
