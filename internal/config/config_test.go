package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "dealtrack")
	t.Setenv("DB_NAME", "dealtrack")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DB.Port != "5432" {
		t.Errorf("DB.Port = %q, want 5432", cfg.DB.Port)
	}
	if cfg.DB.SSLMode != "disable" {
		t.Errorf("DB.SSLMode = %q, want disable", cfg.DB.SSLMode)
	}
	if cfg.Worker.UpdateTime != "03:00" {
		t.Errorf("Worker.UpdateTime = %q, want 03:00", cfg.Worker.UpdateTime)
	}
	if cfg.Worker.Timezone != "America/New_York" {
		t.Errorf("Worker.Timezone = %q, want America/New_York", cfg.Worker.Timezone)
	}
	if cfg.Worker.AlertDedupeWindow != 6*time.Hour {
		t.Errorf("Worker.AlertDedupeWindow = %v, want 6h", cfg.Worker.AlertDedupeWindow)
	}
	if cfg.Worker.AmazonDelay != 5*time.Second {
		t.Errorf("Worker.AmazonDelay = %v, want 5s", cfg.Worker.AmazonDelay)
	}
	if cfg.Worker.WalmartDelay != 3*time.Second {
		t.Errorf("Worker.WalmartDelay = %v, want 3s", cfg.Worker.WalmartDelay)
	}
	if cfg.Similarity.Timeout != 15*time.Second {
		t.Errorf("Similarity.Timeout = %v, want 15s", cfg.Similarity.Timeout)
	}
	if cfg.Similarity.Delay != time.Second {
		t.Errorf("Similarity.Delay = %v, want 1s", cfg.Similarity.Delay)
	}
}

func TestLoadMissingDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without database configuration")
	}
}

func TestLoadMissingJWTSecret(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "dealtrack")
	t.Setenv("DB_NAME", "dealtrack")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET")
	}
}

func TestLoadInvalidUpdateTime(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPDATE_TIME", "25:99")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted invalid UPDATE_TIME")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALERT_DEDUPE_WINDOW", "six hours")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted invalid ALERT_DEDUPE_WINDOW")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("UPDATE_TIME", "14:30")
	t.Setenv("AMAZON_DELAY", "250ms")
	t.Setenv("SIMSCORE_DELAY", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Worker.UpdateTime != "14:30" {
		t.Errorf("Worker.UpdateTime = %q, want 14:30", cfg.Worker.UpdateTime)
	}
	if cfg.Worker.AmazonDelay != 250*time.Millisecond {
		t.Errorf("Worker.AmazonDelay = %v, want 250ms", cfg.Worker.AmazonDelay)
	}
	if cfg.Similarity.Delay != 2*time.Second {
		t.Errorf("Similarity.Delay = %v, want 2s", cfg.Similarity.Delay)
	}
}
