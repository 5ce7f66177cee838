package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/opendota-go/internal/logger"
	"github.com/samvad-hq/opendota-go/pkg/feeds"
)

// Service coordinates crawling across multiple feeds.
type Service struct {
	processor *FeedProcessor
}

// NewService wires a crawler with the feed fetcher registry and its collaborators.
func NewService(reg feeds.FetcherRegistry, enricher Enricher, pub EventPublisher, log logger.Logger, deduper Deduper) *Service {
	return &Service{processor: NewFeedProcessor(reg, enricher, pub, log, deduper)}
}

// Run executes a crawl pass for all configured feeds.
func (s *Service) Run(ctx context.Context, list []feeds.Feed) error {
	if s == nil || s.processor == nil || s.processor.registry == nil {
		return fmt.Errorf("crawler service is not initialized")
	}

	if len(list) == 0 {
		return fmt.Errorf("no feeds configured for crawling")
	}

	if errs := s.runAll(ctx, list); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// runAll processes feeds in order and stops without error once ctx is done.
func (s *Service) runAll(ctx context.Context, list []feeds.Feed) []error {
	errs := make([]error, 0, len(list))

	for _, feed := range list {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.processor.Process(ctx, feed); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			errs = append(errs, err)
			s.processor.log.ErrorObj("feed crawl failed", "feed_error", map[string]any{
				"feed_id": feed.ID,
				"error":   err.Error(),
			})
		}
	}

	return errs
}
