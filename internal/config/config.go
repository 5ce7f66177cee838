package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName           string        `mapstructure:"app_name"`
	Env               string        `mapstructure:"app_env"`
	LogLevel          string        `mapstructure:"log_level"`
	FeedsFile         string        `mapstructure:"feeds_file"`
	PublishersFile    string        `mapstructure:"publishers_file"`
	PollIntervalSecs  int64         `mapstructure:"poll_interval"`
	PollInterval      time.Duration `mapstructure:"-"`
	OpenDotaAPIKey    string        `mapstructure:"opendota_api_key" json:"-"`
	OpenDotaBaseURL   string        `mapstructure:"opendota_base_url"`
	OpenDotaTimeout   int64         `mapstructure:"opendota_timeout_seconds"`
	OpenDotaRateLimit int           `mapstructure:"opendota_rate_limit_per_minute"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "opendota-harvester")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("feeds_file", "./configs/feeds.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("poll_interval", 300) // seconds
	v.SetDefault("opendota_api_key", "")
	v.SetDefault("opendota_base_url", "https://api.opendota.com/api/")
	v.SetDefault("opendota_timeout_seconds", 15)
	v.SetDefault("opendota_rate_limit_per_minute", 60)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/matches.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.OpenDotaAPIKey = strings.TrimSpace(cfg.OpenDotaAPIKey)
	cfg.OpenDotaBaseURL = strings.TrimSpace(cfg.OpenDotaBaseURL)

	if cfg.PollIntervalSecs <= 0 {
		return fmt.Errorf("invalid poll_interval (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSecs) * time.Second

	if cfg.OpenDotaTimeout <= 0 {
		return fmt.Errorf("invalid opendota_timeout_seconds (must be positive seconds)")
	}
	if cfg.OpenDotaRateLimit < 0 {
		return fmt.Errorf("invalid opendota_rate_limit_per_minute (must be zero or positive)")
	}

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return nil
}

// RequestTimeout returns the per-request timeout for OpenDota calls.
func (cfg *Config) RequestTimeout() time.Duration {
	return time.Duration(cfg.OpenDotaTimeout) * time.Second
}
