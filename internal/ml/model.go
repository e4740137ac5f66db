package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoModel indicates that no usable trained model artifact exists. Callers
// treat it as a degraded mode, not a failure.
var ErrNoModel = errors.New("no trained model available")

// Prediction messages surfaced to learners.
const (
	DoingWellMessage = "You're doing well!"
	ReviewMessage    = "Review your weak areas."
	NoModelMessage   = "No model available. Train a model to provide predictions."
)

// Model bundles the fitted classifier with the topic encoder it was trained
// with. Keeping both in one artifact guarantees the inference-time vocabulary
// matches the training-time one.
type Model struct {
	Encoder   *TopicEncoder `json:"encoder"`
	Forest    *Forest       `json:"forest"`
	TrainedAt time.Time     `json:"trained_at"`
}

// PredictMessage classifies the feature vector and maps the label to learner
// facing text. A nil or empty model yields the no-model sentinel.
func (m *Model) PredictMessage(features []float64) string {
	if m == nil || m.Forest == nil || len(m.Forest.Trees) == 0 {
		return NoModelMessage
	}

	if m.Forest.Predict(features) == 1 {
		return DoingWellMessage
	}
	return ReviewMessage
}

// SaveModel persists the artifact atomically: the file is written to a
// temporary path first and renamed only on success, so readers never observe
// a partial model.
func SaveModel(path string, model *Model) error {
	if model == nil || model.Forest == nil || model.Encoder == nil {
		return fmt.Errorf("refusing to persist an incomplete model")
	}

	payload, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalise model artifact: %w", err)
	}

	return nil
}

// LoadModel reads the artifact from disk. A missing or corrupt artifact
// returns ErrNoModel so the caller can fall back to the degraded mode.
func LoadModel(path string) (*Model, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, path)
	}

	var model Model
	if err := json.Unmarshal(payload, &model); err != nil {
		return nil, fmt.Errorf("%w: corrupt artifact at %s", ErrNoModel, path)
	}

	if model.Forest == nil || model.Encoder == nil {
		return nil, fmt.Errorf("%w: incomplete artifact at %s", ErrNoModel, path)
	}

	return &model, nil
}
