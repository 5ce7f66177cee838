package feeds

import (
	"fmt"
	"strings"
	"sync"
)

const (
	TypeEndpoint   = "opendota_endpoint"
	TypeProMatches = "pro_matches"

	proMatchesEndpoint = "proMatches"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewFetcherRegistry builds a registry for the given fetchers keyed by feed id.
func NewFetcherRegistry(fetchers ...Fetcher) FetcherRegistry {
	return NewTypeFetcherRegistry(nil, fetchers...)
}

// NewTypeFetcherRegistry builds a registry with type-based fetchers and feed-specific fetchers.
func NewTypeFetcherRegistry(typeFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}

	for _, f := range fetchers {
		if f != nil {
			reg.register(reg.fetchersByID, f.ID(), f)
		}
	}
	for typ, f := range typeFetchers {
		reg.register(reg.fetchersByType, typ, f)
	}

	return reg
}

func (r *fetcherRegistry) register(dst map[string]Fetcher, key string, f Fetcher) {
	key = normalizeKey(key)
	if f == nil || key == "" {
		return
	}

	r.mu.Lock()
	dst[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given feed by id first, then by type.
func (r *fetcherRegistry) FetcherFor(feed Feed) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(feed.ID) == "" {
		return nil, fmt.Errorf("feed id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[normalizeKey(feed.ID)]; ok {
		return f, nil
	}
	if typeKey := normalizeKey(feed.Type); typeKey != "" {
		if f, ok := r.fetchersByType[typeKey]; ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("no fetcher registered for feed %q (type %q)", feed.ID, feed.Type)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultFetcherRegistry wires the built-in feed types to the given caller.
func DefaultFetcherRegistry(caller Caller) FetcherRegistry {
	typeFetchers := map[string]Fetcher{
		TypeEndpoint:   NewEndpointFetcher(caller),
		TypeProMatches: NewProMatchesFetcher(caller),
	}
	return NewTypeFetcherRegistry(typeFetchers)
}
