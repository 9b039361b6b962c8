package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Empty DatabaseURL or RedisURL disables the corresponding store.
type Config struct {
	DatabaseURL      string
	RedisURL         string
	SolverWorkers    int
	SolutionCacheTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DatabaseURL:      envOrDefault("DATABASE_URL", ""),
		RedisURL:         envOrDefault("REDIS_URL", ""),
		SolverWorkers:    envIntOrDefault("SOLVER_WORKERS", 1),
		SolutionCacheTTL: envDurationOrDefault("SOLUTION_CACHE_TTL", 24*time.Hour),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
