package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samvad-hq/opendota-go/internal/domain"
	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

// endpointFetcher lists matches from any array endpoint of the catalog.
type endpointFetcher struct {
	id       string
	caller   Caller
	endpoint string
}

// NewEndpointFetcher serves feeds of type opendota_endpoint.
func NewEndpointFetcher(caller Caller) Fetcher {
	return &endpointFetcher{id: TypeEndpoint, caller: caller}
}

// NewProMatchesFetcher serves feeds of type pro_matches.
func NewProMatchesFetcher(caller Caller) Fetcher {
	return &endpointFetcher{id: TypeProMatches, caller: caller, endpoint: proMatchesEndpoint}
}

func (f *endpointFetcher) ID() string { return f.id }

func (f *endpointFetcher) Fetch(ctx context.Context, feed Feed) ([]domain.Match, error) {
	if f.caller == nil {
		return nil, fmt.Errorf("feed %s: opendota caller is nil", feed.ID)
	}

	endpoint := feed.Endpoint
	if f.endpoint != "" {
		endpoint = f.endpoint
	}

	res, err := f.caller.Call(ctx, endpoint, feed.PathParams, feed.Params())
	if err != nil {
		return nil, fmt.Errorf("call %s for feed %s: %w", endpoint, feed.ID, err)
	}

	rows, ok := res.([]opendota.Object)
	if !ok {
		return nil, fmt.Errorf("feed %s: endpoint %s returned %T, want a list", feed.ID, endpoint, res)
	}

	return buildMatches(feed, rows), nil
}

// buildMatches keeps the rows carrying a match id, first occurrence wins.
func buildMatches(feed Feed, rows []opendota.Object) []domain.Match {
	idField := ConfigString(feed, ConfigIDFieldKey, defaultIDField)
	limit := ConfigInt(feed, ConfigMaxMatchesKey, 0)

	matches := make([]domain.Match, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if limit > 0 && len(matches) >= limit {
			break
		}
		id, ok := MatchID(row[idField])
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		matches = append(matches, domain.Match{ID: id, FeedID: feed.ID, Summary: row})
	}
	return matches
}

// MatchID renders a decoded match id as a decimal string. Zero, negative and
// non-integral values are rejected.
func MatchID(raw any) (string, bool) {
	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		if v != float64(int64(v)) {
			return "", false
		}
		s = strconv.FormatInt(int64(v), 10)
	default:
		return "", false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}
