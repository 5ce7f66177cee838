package crawler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/pkg/feeds"
	"github.com/samvad-hq/opendota-go/pkg/publishers"
)

// fakeFetcher returns preset matches or an error.
type fakeFetcher struct {
	id      string
	matches []domain.Match
	err     error
}

func (f *fakeFetcher) ID() string { return f.id }
func (f *fakeFetcher) Fetch(_ context.Context, _ feeds.Feed) ([]domain.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

// fakeRegistry maps every feed to a single fetcher.
type fakeRegistry struct {
	fetcher feeds.Fetcher
}

func (f *fakeRegistry) FetcherFor(_ feeds.Feed) (feeds.Fetcher, error) {
	if f.fetcher == nil {
		return nil, errors.New("missing fetcher")
	}
	return f.fetcher, nil
}

// fakeEnricher stamps a replay url on every match.
type fakeEnricher struct {
	calls int
}

func (f *fakeEnricher) Enrich(_ context.Context, _ feeds.Feed, matches []domain.Match) []domain.Match {
	f.calls++
	out := make([]domain.Match, len(matches))
	for i, m := range matches {
		m.ReplayURL = "replay-" + m.ID
		out[i] = m
	}
	return out
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu        sync.Mutex
	events    []publishers.Event
	errOnID   string
	successes int
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Match.ID == f.errOnID {
		return 0, errors.New("boom")
	}
	f.successes++
	return 1, nil
}

// fakeDeduper tracks seen IDs.
type fakeDeduper struct {
	mu      sync.Mutex
	seen    map[string]bool
	failID  string
	failErr error
}

func (f *fakeDeduper) SeenMatch(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.failID && f.failErr != nil {
		return false, f.failErr
	}
	return f.seen[id], nil
}

func (f *fakeDeduper) MarkMatch(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[id] = true
	return nil
}

func TestFeedProcessorPublishesFreshMatchesOnly(t *testing.T) {
	feed := feeds.Feed{ID: "pro", Name: "Pro matches"}
	matches := []domain.Match{
		{ID: "100", FeedID: "pro"},
		{ID: "101", FeedID: "pro"},
	}

	deduper := &fakeDeduper{seen: map[string]bool{"100": true}}
	pub := &fakePublisher{}
	enricher := &fakeEnricher{}

	processor := NewFeedProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "pro", matches: matches},
	}, enricher, pub, nil, deduper)

	if err := processor.Process(context.Background(), feed); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.Match.ID != "101" || evt.Match.ReplayURL != "replay-101" || evt.FeedName != "Pro matches" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !deduper.seen["101"] {
		t.Fatalf("MarkMatch not called for new match")
	}
}

func TestFeedProcessorSkipsEnrichmentWhenNothingIsNew(t *testing.T) {
	enricher := &fakeEnricher{}
	processor := NewFeedProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "p", matches: []domain.Match{{ID: "1"}}},
	}, enricher, &fakePublisher{}, nil, &fakeDeduper{seen: map[string]bool{"1": true}})

	if err := processor.Process(context.Background(), feeds.Feed{ID: "p"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if enricher.calls != 0 {
		t.Fatalf("enricher should not run without new matches")
	}
}

func TestFeedProcessorAggregatesPublishErrors(t *testing.T) {
	pub := &fakePublisher{errOnID: "666"}
	deduper := &fakeDeduper{}
	processor := NewFeedProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "p", matches: []domain.Match{{ID: "666"}, {ID: "7"}}},
	}, nil, pub, nil, deduper)

	err := processor.Process(context.Background(), feeds.Feed{ID: "p"})
	if err == nil || !strings.Contains(err.Error(), "666") {
		t.Fatalf("expected error mentioning failed match, got %v", err)
	}
	if deduper.seen["666"] {
		t.Fatalf("undelivered match must not be marked")
	}
	if !deduper.seen["7"] {
		t.Fatalf("delivered match must be marked")
	}
}

func TestFeedProcessorWrapsFetchErrors(t *testing.T) {
	fetchErr := errors.New("upstream down")
	processor := NewFeedProcessor(&fakeRegistry{fetcher: &fakeFetcher{id: "p", err: fetchErr}}, nil, nil, nil, nil)

	err := processor.Process(context.Background(), feeds.Feed{ID: "p"})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
}

func TestServiceRunAllCancelsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(&fakeRegistry{fetcher: &fakeFetcher{id: "p", err: errors.New("never")}}, nil, nil, nil, nil)
	errs := svc.runAll(ctx, []feeds.Feed{{ID: "p"}})
	if len(errs) != 0 {
		t.Fatalf("expected no errors on cancelled context, got %v", errs)
	}
}

func TestServiceRunJoinsFeedErrors(t *testing.T) {
	svc := NewService(&fakeRegistry{}, nil, nil, nil, nil)
	err := svc.Run(context.Background(), []feeds.Feed{{ID: "a"}, {ID: "b"}})
	if err == nil || !strings.Contains(err.Error(), "feed a") || !strings.Contains(err.Error(), "feed b") {
		t.Fatalf("expected both feed errors, got %v", err)
	}
}

func TestRunReturnsErrorOnEmptyFeeds(t *testing.T) {
	svc := NewService(&fakeRegistry{fetcher: &fakeFetcher{id: "p"}}, nil, nil, nil, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error when feeds list empty")
	}
}

func TestFilterNewMatchesHandlesDeduperErrors(t *testing.T) {
	deduper := &fakeDeduper{
		seen:    map[string]bool{"1": false, "2": true},
		failID:  "3",
		failErr: errors.New("lookup failed"),
	}
	processor := NewFeedProcessor(&fakeRegistry{fetcher: &fakeFetcher{id: "p"}}, nil, nil, nil, deduper)
	matches := []domain.Match{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	filtered := processor.filterNewMatches(feeds.Feed{ID: "p"}, matches)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 matches after filter, got %d", len(filtered))
	}
	if filtered[0].ID != "1" || filtered[1].ID != "3" {
		t.Fatalf("unexpected filter result %#v", filtered)
	}
}
