package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the feedback service and its
// batch jobs.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DataDir            string
	ModelPath          string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	QuizEndpoint       string
	SubmissionEndpoint string
	HistoricalEndpoint string
	FeedbackCacheTTL   time.Duration
	FetchTimeout       time.Duration
	ForestTrees        int
	ForestSeed         int64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("QUIZPULSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "QuizPulse API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("data.dir", "data")
	v.SetDefault("model.path", "data/model.json")
	v.SetDefault("endpoints.quiz", "https://www.jsonkeeper.com/b/LLQT")
	v.SetDefault("endpoints.submission", "https://api.jsonserve.com/rJvd7g")
	v.SetDefault("endpoints.historical", "https://api.jsonserve.com/XgAgFJ")
	v.SetDefault("feedback.cache_ttl", "5m")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("forest.trees", 100)
	v.SetDefault("forest.seed", 42)

	ttl, err := time.ParseDuration(v.GetString("feedback.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid feedback cache ttl: %w", err)
	}

	fetchTimeout, err := time.ParseDuration(v.GetString("fetch.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid fetch timeout: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DataDir:            v.GetString("data.dir"),
		ModelPath:          v.GetString("model.path"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		QuizEndpoint:       v.GetString("endpoints.quiz"),
		SubmissionEndpoint: v.GetString("endpoints.submission"),
		HistoricalEndpoint: v.GetString("endpoints.historical"),
		FeedbackCacheTTL:   ttl,
		FetchTimeout:       fetchTimeout,
		ForestTrees:        v.GetInt("forest.trees"),
		ForestSeed:         v.GetInt64("forest.seed"),
	}

	if cfg.ForestTrees <= 0 {
		cfg.ForestTrees = 100
	}

	return cfg, nil
}
