package crawler

import (
	"context"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/pkg/feeds"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
	"github.com/samvad-hq/opendota-go/pkg/publishers"
)

// Enricher adds follow-up data (details, replay links) to freshly listed matches.
type Enricher interface {
	Enrich(ctx context.Context, feed feeds.Feed, matches []domain.Match) []domain.Match
}

// EventPublisher publishes enriched matches downstream and reports how many sinks
// accepted the event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which matches were already published.
type Deduper interface {
	SeenMatch(id string) (bool, error)
	MarkMatch(id string) error
}

// MatchSource is the part of the OpenDota client the enricher needs.
type MatchSource interface {
	GetMatchDetails(ctx context.Context, matchID int64) (opendota.Object, error)
	GetReplays(ctx context.Context, matchIDs ...int64) ([]opendota.Object, error)
}
