package app

import (
	"github.com/samvad-hq/opendota-go/internal/config"
	"github.com/samvad-hq/opendota-go/internal/logger"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

// NewOpenDotaClient builds the API client from config.
func NewOpenDotaClient(cfg *config.Config, log logger.Logger) *opendota.Client {
	opts := []opendota.Option{
		opendota.WithTimeout(cfg.RequestTimeout()),
		opendota.WithRateLimit(cfg.OpenDotaRateLimit),
	}
	if cfg.OpenDotaBaseURL != "" {
		opts = append(opts, opendota.WithBaseURL(cfg.OpenDotaBaseURL))
	}
	if log != nil {
		opts = append(opts, opendota.WithLogger(log))
	}
	return opendota.New(cfg.OpenDotaAPIKey, opts...)
}
