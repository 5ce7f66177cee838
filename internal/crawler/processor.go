package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/internal/logger"
	"github.com/samvad-hq/opendota-go/pkg/feeds"
	"github.com/samvad-hq/opendota-go/pkg/publishers"
)

// FeedProcessor runs one feed: fetch, drop seen matches, enrich, publish, mark.
type FeedProcessor struct {
	registry  feeds.FetcherRegistry
	enricher  Enricher
	publisher EventPublisher
	log       logger.Logger
	deduper   Deduper
}

// NewFeedProcessor wires a processor. enricher, publisher and deduper may be nil.
func NewFeedProcessor(reg feeds.FetcherRegistry, enricher Enricher, pub EventPublisher, log logger.Logger, deduper Deduper) *FeedProcessor {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &FeedProcessor{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		log:       log,
		deduper:   deduper,
	}
}

// Process handles a single feed. Publish failures are joined into the returned error;
// matches that reached at least one sink are marked as seen.
func (p *FeedProcessor) Process(ctx context.Context, feed feeds.Feed) error {
	if p == nil || p.registry == nil {
		return fmt.Errorf("feed processor is not initialized")
	}

	fetcher, err := p.registry.FetcherFor(feed)
	if err != nil {
		return fmt.Errorf("resolve fetcher for feed %s: %w", feed.ID, err)
	}

	matches, err := fetcher.Fetch(ctx, feed)
	if err != nil {
		return fmt.Errorf("fetch feed %s: %w", feed.ID, err)
	}
	listed := len(matches)

	matches = p.filterNewMatches(feed, matches)
	if len(matches) > 0 && p.enricher != nil {
		matches = p.enricher.Enrich(ctx, feed, matches)
	}

	published, err := p.publishAll(ctx, feed, matches)

	p.log.InfoObj("feed crawl completed", "feed_result", map[string]any{
		"feed_id":           feed.ID,
		"matches_listed":    listed,
		"matches_new":       len(matches),
		"matches_published": published,
	})
	return err
}

func (p *FeedProcessor) publishAll(ctx context.Context, feed feeds.Feed, matches []domain.Match) (int, error) {
	if p.publisher == nil {
		return 0, nil
	}

	var errs []error
	published := 0
	for _, m := range matches {
		if ctx.Err() != nil {
			break
		}

		delivered, err := p.publisher.Publish(ctx, publishers.NewEvent(feed.ID, feed.Name, m))
		if err != nil {
			errs = append(errs, fmt.Errorf("publish match %s: %w", m.ID, err))
		}
		if delivered == 0 {
			continue
		}
		published++

		if p.deduper != nil {
			if err := p.deduper.MarkMatch(m.Key()); err != nil {
				p.log.WarnObj("mark match failed", "dedupe_error", map[string]any{
					"feed_id":  feed.ID,
					"match_id": m.ID,
					"error":    err.Error(),
				})
			}
		}
	}
	return published, errors.Join(errs...)
}

// filterNewMatches drops matches the deduper has seen. Lookup failures keep the match.
func (p *FeedProcessor) filterNewMatches(feed feeds.Feed, matches []domain.Match) []domain.Match {
	if p.deduper == nil || len(matches) == 0 {
		return matches
	}

	out := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		seen, err := p.deduper.SeenMatch(m.Key())
		if err != nil {
			p.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"feed_id":  feed.ID,
				"match_id": m.ID,
				"error":    err.Error(),
			})
			out = append(out, m)
			continue
		}
		if !seen {
			out = append(out, m)
		}
	}
	return out
}
