package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port          string
	DatabasePath  string
	UploadsDir    string
	SweepInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "taskboard.db"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		SweepInterval: parseHours(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_HOURS")), 6*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseHours(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw + "h")
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
