package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Inbound rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Datastores
	PostgresURL string
	RedisURL    string

	// Riot API
	RiotAPIKey      string
	RiotBaseURL     string // routing region, account + match data
	RiotRegionalURL string // platform region, summoner data

	// Upstream fetch behaviour
	RequestTimeout    time.Duration
	RetryBudget       int
	TransientBackoff  time.Duration
	FetchInterval     time.Duration
	FetchConcurrency  int
	DefaultMatchCount int

	// Derived-view cache
	CacheTTL time.Duration
}

// Load loads configuration from the environment, reading a local .env file
// first if one exists. It returns an error if critical configuration is
// missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnvInt("PORT", 3001),
		Env:  getEnv("ENV", "development"),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),

		RiotBaseURL:     getEnv("RIOT_BASE_URL", "https://americas.api.riotgames.com"),
		RiotRegionalURL: getEnv("RIOT_REGIONAL_URL", "https://na1.api.riotgames.com"),

		RequestTimeout:    getEnvDuration("RIOT_REQUEST_TIMEOUT", 10*time.Second),
		RetryBudget:       getEnvInt("RIOT_RETRY_BUDGET", 3),
		TransientBackoff:  getEnvDuration("RIOT_TRANSIENT_BACKOFF", 2*time.Second),
		FetchInterval:     getEnvDuration("RIOT_FETCH_INTERVAL", 150*time.Millisecond),
		FetchConcurrency:  getEnvInt("RIOT_FETCH_CONCURRENCY", 4),
		DefaultMatchCount: getEnvInt("DEFAULT_MATCH_COUNT", 10),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}
	if cfg.RiotAPIKey, err = getEnvRequired("RIOT_API_KEY"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
