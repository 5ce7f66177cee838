package feeds

import (
	"context"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

// Fetcher retrieves the matches listed by a feed.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, feed Feed) ([]domain.Match, error)
}

// FetcherRegistry resolves the fetcher implementation for a given feed.
type FetcherRegistry interface {
	FetcherFor(feed Feed) (Fetcher, error)
}

// Caller invokes a catalog endpoint by name. *opendota.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, name string, pathArgs []string, params opendota.Params) (any, error)
}
