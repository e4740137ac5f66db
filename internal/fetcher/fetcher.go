package fetcher

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/quizpulse/quizpulse-api/internal/datastore"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Source names one remote JSON blob and where it lands in the data
// directory.
type Source struct {
	Name     string
	URL      string
	Filename string
}

// Sources builds the standard three inputs from configured endpoint URLs.
func Sources(quizURL, submissionURL, historicalURL string) []Source {
	return []Source{
		{Name: "quiz", URL: quizURL, Filename: datastore.QuizFile},
		{Name: "submission", URL: submissionURL, Filename: datastore.SubmissionFile},
		{Name: "historical", URL: historicalURL, Filename: datastore.HistoricalFile},
	}
}

// Fetcher downloads the input blobs, validates them against their schemas
// and writes them into the data directory.
type Fetcher struct {
	client  *http.Client
	dir     string
	schemas map[string]*jsonschema.Schema
	logger  zerolog.Logger
}

// New compiles the embedded schemas and prepares the HTTP client.
func New(dir string, timeout time.Duration, logger zerolog.Logger) (*Fetcher, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema, 3)

	for _, name := range []string{"quiz", "submission", "historical"} {
		filename := fmt.Sprintf("schemas/%s.schema.json", name)
		file, err := schemaFS.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded schema %s: %w", filename, err)
		}
		if err := compiler.AddResource(filename, file); err != nil {
			return nil, fmt.Errorf("failed to register schema %s: %w", filename, err)
		}
		schema, err := compiler.Compile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", filename, err)
		}
		schemas[name] = schema
	}

	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		dir:     dir,
		schemas: schemas,
		logger:  logger.With().Str("component", "fetcher").Logger(),
	}, nil
}

// Fetch downloads one source, validates the payload and writes it to disk.
// The returned bytes let callers import the blob without re-reading the
// file.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", src.Name, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s data: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d retrieving %s data", resp.StatusCode, src.Name)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s data: %w", src.Name, err)
	}

	if err := f.validate(src.Name, payload); err != nil {
		return nil, err
	}

	if err := f.write(src.Filename, payload); err != nil {
		return nil, err
	}

	f.logger.Info().Str("source", src.Name).Str("file", src.Filename).Int("bytes", len(payload)).Msg("data downloaded")
	return payload, nil
}

func (f *Fetcher) validate(name string, payload []byte) error {
	schema, ok := f.schemas[name]
	if !ok {
		return nil
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%s data is not valid JSON: %w", name, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s data failed schema validation: %w", name, err)
	}

	return nil
}

func (f *Fetcher) write(filename string, payload []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(f.dir, filename)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return os.Rename(tmp, path)
}
