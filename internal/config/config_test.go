package config

import (
	"testing"
	"time"
)

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "60")
	t.Setenv("OPENDOTA_API_KEY", "  abc  ")
	t.Setenv("STORAGE_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != time.Minute {
		t.Fatalf("expected 1m poll interval, got %v", cfg.PollInterval)
	}
	if cfg.OpenDotaAPIKey != "abc" {
		t.Fatalf("expected trimmed api key, got %q", cfg.OpenDotaAPIKey)
	}
	if cfg.StorageType != "none" {
		t.Fatalf("expected storage type from env, got %q", cfg.StorageType)
	}
	if cfg.OpenDotaRateLimit != 60 || cfg.RequestTimeout() != 15*time.Second {
		t.Fatalf("unexpected opendota defaults: %+v", cfg)
	}
	if cfg.StorageTTL != 7*24*time.Hour {
		t.Fatalf("unexpected storage ttl %v", cfg.StorageTTL)
	}
}

func TestLoadRejectsInvalidPollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero poll interval")
	}
}

func TestNormalizeRejectsNegativeRateLimit(t *testing.T) {
	cfg := Config{
		PollIntervalSecs:      1,
		OpenDotaTimeout:       1,
		OpenDotaRateLimit:     -1,
		StorageTTLSeconds:     1,
		StorageCleanupSeconds: 1,
	}
	if err := cfg.normalize(); err == nil {
		t.Fatalf("expected error for negative rate limit")
	}
}
