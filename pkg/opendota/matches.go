package opendota

import (
	"context"
	"strconv"
)

// GetMatchDetails returns the full record of a completed match.
func (c *Client) GetMatchDetails(ctx context.Context, matchID int64) (Object, error) {
	return c.object(ctx, epMatchDetails, []string{strconv.FormatInt(matchID, 10)}, nil)
}

// GetProMatches lists recent pro matches. Page with LessThanMatchID.
func (c *Client) GetProMatches(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epProMatches, nil, opts)
}

// GetPublicMatches lists randomly sampled public matches.
func (c *Client) GetPublicMatches(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPublicMatches, nil, opts)
}

// GetParsedMatches lists ids of parsed matches.
func (c *Client) GetParsedMatches(ctx context.Context, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epParsedMatches, nil, opts)
}

// GetLiveGames lists games currently in progress.
func (c *Client) GetLiveGames(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epLive, nil, nil)
}

// GetRecordsOfStat returns the top performances for a stat.
func (c *Client) GetRecordsOfStat(ctx context.Context, field string) ([]Object, error) {
	return c.array(ctx, epRecords, []string{field}, nil)
}
