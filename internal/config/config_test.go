package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "APP_MIGRATE", "KEYWORD_PROVIDER", "SERP_RESULTS", "INITIAL_CREDITS", "HTTP_CLIENT_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Env != "dev" || !cfg.IsDev() {
		t.Fatalf("env = %q, want dev", cfg.Env)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("port = %q", cfg.HTTPPort)
	}
	if cfg.Migrate {
		t.Fatal("migrate should default to false")
	}
	if cfg.KeywordProvider != "openai" {
		t.Fatalf("provider = %q", cfg.KeywordProvider)
	}
	if cfg.SerpResults != 5 || cfg.InitialCredits != 50 {
		t.Fatalf("serp=%d initial=%d", cfg.SerpResults, cfg.InitialCredits)
	}
	if cfg.HTTPClientTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.HTTPClientTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("KEYWORD_PROVIDER", "Gemini")
	t.Setenv("RATE_RPS", "7")
	t.Setenv("INITIAL_CREDITS", "not-a-number")

	cfg := Load()
	if cfg.IsDev() {
		t.Fatal("prod env reported as dev")
	}
	if !cfg.Migrate {
		t.Fatal("migrate not parsed")
	}
	if cfg.KeywordProvider != "gemini" {
		t.Fatalf("provider = %q, want gemini", cfg.KeywordProvider)
	}
	if cfg.RateRPS != 7 {
		t.Fatalf("rate = %d", cfg.RateRPS)
	}
	if cfg.InitialCredits != 50 {
		t.Fatalf("invalid int should fall back, got %d", cfg.InitialCredits)
	}
}
