package datastore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/quizpulse/quizpulse-api/internal/dto"
)

// Data file names inside the data directory, matching what the fetch job
// writes.
const (
	QuizFile       = "quiz_data.json"
	SubmissionFile = "submission_data.json"
	HistoricalFile = "historical_data.json"
)

// FileStore reads the JSON input blobs from the data directory. A missing or
// unreadable file degrades to an empty value; it never fails the pipeline.
type FileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		dir:    dir,
		logger: logger.With().Str("component", "file_store").Logger(),
	}
}

// LoadQuiz returns the current quiz definition, or a zero value when absent.
func (s *FileStore) LoadQuiz() dto.QuizData {
	var quiz dto.QuizData
	s.load(QuizFile, &quiz)
	return quiz
}

// LoadSubmission returns the submission being graded, or a zero value when
// absent.
func (s *FileStore) LoadSubmission() dto.SubmissionData {
	var submission dto.SubmissionData
	s.load(SubmissionFile, &submission)
	return submission
}

// LoadHistorical returns the historical corpus, or an empty slice when
// absent.
func (s *FileStore) LoadHistorical() []dto.HistoricalEntry {
	var entries []dto.HistoricalEntry
	s.load(HistoricalFile, &entries)
	return entries
}

func (s *FileStore) load(name string, out interface{}) {
	path := filepath.Join(s.dir, name)

	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("file", name).Msg("input file missing, using empty value")
		} else {
			s.logger.Warn().Err(err).Str("file", name).Msg("failed to read input file")
		}
		return
	}

	if err := json.Unmarshal(payload, out); err != nil {
		s.logger.Warn().Err(err).Str("file", name).Msg("failed to decode input file, using empty value")
	}
}
