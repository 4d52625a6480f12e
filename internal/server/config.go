package server

import (
	"os"
	"time"
)

// Config holds the dashboard service configuration, loaded from
// environment variables.
type Config struct {
	ServerAddr    string        // env: SCORECARD_ADDR, default ":8080"
	ScorecardsDir string        // env: SCORECARD_SCORECARDS_DIR, default "Scorecards"
	CacheTTL      time.Duration // env: SCORECARD_CACHE_TTL, default 5m
	Environment   string        // env: SCORECARD_ENV, default "production"
	SiteTitle     string        // env: SCORECARD_SITE_TITLE
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		ServerAddr:    getEnv("SCORECARD_ADDR", ":8080"),
		ScorecardsDir: getEnv("SCORECARD_SCORECARDS_DIR", "Scorecards"),
		CacheTTL:      getDurationEnv("SCORECARD_CACHE_TTL", 5*time.Minute),
		Environment:   getEnv("SCORECARD_ENV", "production"),
		SiteTitle:     getEnv("SCORECARD_SITE_TITLE", "Scorecard Review Dashboard"),
	}
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
