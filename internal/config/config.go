package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	DB         DatabaseConfig
	Redis      RedisConfig
	RapidAPI   RapidAPIConfig
	Similarity SimilarityConfig
	Worker     WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RapidAPIConfig contains API keys for the marketplace data providers.
// A marketplace with an empty key is skipped by the pipelines.
type RapidAPIConfig struct {
	AmazonKey  string
	EbayKey    string
	WalmartKey string
}

// SimilarityConfig contains the title-similarity oracle endpoint. Delay is
// the throttle interval between successive scoring calls.
type SimilarityConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Delay   time.Duration
}

// WorkerConfig contains the daily batch schedule and the per-host throttle
// intervals for outbound marketplace calls.
type WorkerConfig struct {
	UpdateTime        string // HH:MM wall-clock time of the daily run
	Timezone          string
	AlertDedupeWindow time.Duration
	AmazonDelay       time.Duration
	EbayDelay         time.Duration
	WalmartDelay      time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// RapidAPI marketplace keys
	cfg.RapidAPI = RapidAPIConfig{
		AmazonKey:  getEnv("RAPIDAPI_AMAZON_KEY", ""),
		EbayKey:    getEnv("RAPIDAPI_EBAY_KEY", ""),
		WalmartKey: getEnv("RAPIDAPI_WALMART_KEY", ""),
	}

	// Similarity oracle
	cfg.Similarity = SimilarityConfig{
		BaseURL: getEnv("SIMSCORE_URL", ""),
		APIKey:  getEnv("SIMSCORE_API_KEY", ""),
	}

	var err error
	if cfg.Similarity.Timeout, err = parseDurationEnv("SIMSCORE_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid SIMSCORE_TIMEOUT: %w", err)
	}
	if cfg.Similarity.Delay, err = parseDurationEnv("SIMSCORE_DELAY", "1s"); err != nil {
		return nil, fmt.Errorf("invalid SIMSCORE_DELAY: %w", err)
	}

	// Worker schedule and throttling
	cfg.Worker.UpdateTime = getEnv("UPDATE_TIME", "03:00")
	cfg.Worker.Timezone = getEnv("UPDATE_TIMEZONE", "America/New_York")
	if _, err := time.Parse("15:04", cfg.Worker.UpdateTime); err != nil {
		return nil, fmt.Errorf("invalid UPDATE_TIME %q: expected HH:MM", cfg.Worker.UpdateTime)
	}
	if cfg.Worker.AlertDedupeWindow, err = parseDurationEnv("ALERT_DEDUPE_WINDOW", "6h"); err != nil {
		return nil, fmt.Errorf("invalid ALERT_DEDUPE_WINDOW: %w", err)
	}
	if cfg.Worker.AmazonDelay, err = parseDurationEnv("AMAZON_DELAY", "5s"); err != nil {
		return nil, fmt.Errorf("invalid AMAZON_DELAY: %w", err)
	}
	if cfg.Worker.EbayDelay, err = parseDurationEnv("EBAY_DELAY", "5s"); err != nil {
		return nil, fmt.Errorf("invalid EBAY_DELAY: %w", err)
	}
	if cfg.Worker.WalmartDelay, err = parseDurationEnv("WALMART_DELAY", "3s"); err != nil {
		return nil, fmt.Errorf("invalid WALMART_DELAY: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
