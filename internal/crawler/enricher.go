package crawler

import (
	"context"
	"strconv"
	"time"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/internal/logger"
	"github.com/samvad-hq/opendota-go/pkg/feeds"
)

// MatchEnricher fetches match details and replay links for new matches.
type MatchEnricher struct {
	source MatchSource
	log    logger.Logger
}

// NewMatchEnricher builds an enricher on top of an OpenDota client.
func NewMatchEnricher(source MatchSource, log logger.Logger) *MatchEnricher {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &MatchEnricher{source: source, log: log}
}

// Enrich applies the feed's enrich flags. Requests are spaced by the feed's request
// delay. A failed lookup leaves the match as it was; on cancellation only the matches
// handled so far are returned.
func (e *MatchEnricher) Enrich(ctx context.Context, feed feeds.Feed, matches []domain.Match) []domain.Match {
	if e == nil || e.source == nil || len(matches) == 0 {
		return matches
	}
	if !feed.Enrich.Details && !feed.Enrich.Replays {
		return matches
	}

	out := append([]domain.Match(nil), matches...)
	delay := feed.RequestDelay()
	requests := 0

	throttle := func() bool {
		defer func() { requests++ }()
		if requests == 0 || delay <= 0 {
			return ctx.Err() == nil
		}
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		}
	}

	if feed.Enrich.Replays {
		if !throttle() {
			return out[:0]
		}
		e.attachReplays(ctx, feed, out)
	}

	if feed.Enrich.Details {
		for i := range out {
			if !throttle() {
				return out[:i]
			}
			e.attachDetails(ctx, feed, &out[i])
		}
	}

	return out
}

func (e *MatchEnricher) attachReplays(ctx context.Context, feed feeds.Feed, matches []domain.Match) {
	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		if id, err := strconv.ParseInt(m.Key(), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}

	rows, err := e.source.GetReplays(ctx, ids...)
	if err != nil {
		e.log.WarnObj("replay lookup failed", "enrich_error", map[string]any{
			"feed_id": feed.ID,
			"matches": len(ids),
			"error":   err.Error(),
		})
		return
	}

	urls := make(map[string]string, len(rows))
	for _, row := range rows {
		id, ok := feeds.MatchID(row["match_id"])
		if !ok {
			continue
		}
		if u, ok := row["replay_url"].(string); ok && u != "" {
			urls[id] = u
		}
	}
	for i := range matches {
		if u, ok := urls[matches[i].Key()]; ok {
			matches[i].ReplayURL = u
		}
	}
}

func (e *MatchEnricher) attachDetails(ctx context.Context, feed feeds.Feed, m *domain.Match) {
	id, err := strconv.ParseInt(m.Key(), 10, 64)
	if err != nil {
		return
	}

	details, err := e.source.GetMatchDetails(ctx, id)
	if err != nil {
		e.log.WarnObj("match details lookup failed", "enrich_error", map[string]any{
			"feed_id":  feed.ID,
			"match_id": m.ID,
			"error":    err.Error(),
		})
		return
	}

	m.Details = details
	if m.ReplayURL == "" {
		if u, ok := details["replay_url"].(string); ok {
			m.ReplayURL = u
		}
	}
}
