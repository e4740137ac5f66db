package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quizpulse/quizpulse-api/internal/datastore"
)

func newTestFetcher(t *testing.T, dir string) *Fetcher {
	t.Helper()

	f, err := New(dir, 5*time.Second, zerolog.Nop())
	require.NoError(t, err)
	return f
}

func TestFetchDownloadsAndWritesValidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"quiz": {"topic": "Algebra", "total_score": 100, "score": 85}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	f := newTestFetcher(t, dir)

	payload, err := f.Fetch(context.Background(), Source{Name: "quiz", URL: server.URL, Filename: datastore.QuizFile})
	require.NoError(t, err)
	require.Contains(t, string(payload), "Algebra")

	written, err := os.ReadFile(filepath.Join(dir, datastore.QuizFile))
	require.NoError(t, err)
	require.Equal(t, payload, written)
}

func TestFetchRejectsSchemaViolations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// historical data must be an array
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	f := newTestFetcher(t, dir)

	_, err := f.Fetch(context.Background(), Source{Name: "historical", URL: server.URL, Filename: datastore.HistoricalFile})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, datastore.HistoricalFile))
	require.True(t, os.IsNotExist(statErr))
}

func TestFetchRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := newTestFetcher(t, t.TempDir())

	_, err := f.Fetch(context.Background(), Source{Name: "quiz", URL: server.URL, Filename: datastore.QuizFile})
	require.Error(t, err)
}

func TestFetchRejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	f := newTestFetcher(t, t.TempDir())

	_, err := f.Fetch(context.Background(), Source{Name: "submission", URL: server.URL, Filename: datastore.SubmissionFile})
	require.Error(t, err)
}

func TestSourcesCoverAllInputs(t *testing.T) {
	sources := Sources("http://a", "http://b", "http://c")
	require.Len(t, sources, 3)
	require.Equal(t, datastore.QuizFile, sources[0].Filename)
	require.Equal(t, datastore.SubmissionFile, sources[1].Filename)
	require.Equal(t, datastore.HistoricalFile, sources[2].Filename)
}
