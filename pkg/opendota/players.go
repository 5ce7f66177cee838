package opendota

import (
	"context"
	"strconv"
)

func accountArg(accountID int64) []string {
	return []string{strconv.FormatInt(accountID, 10)}
}

// GetPlayerData returns the profile of a Steam32 account.
func (c *Client) GetPlayerData(ctx context.Context, accountID int64) (Object, error) {
	return c.object(ctx, epPlayer, accountArg(accountID), nil)
}

// GetWLCount returns the win/loss count of a player.
func (c *Client) GetWLCount(ctx context.Context, accountID int64, opts ...QueryOption) (Object, error) {
	return c.object(ctx, epPlayerWL, accountArg(accountID), opts)
}

// GetRecentMatches returns the player's most recent matches.
func (c *Client) GetRecentMatches(ctx context.Context, accountID int64) ([]Object, error) {
	return c.array(ctx, epPlayerRecent, accountArg(accountID), nil)
}

// GetMatches returns the matches played by a player.
func (c *Client) GetMatches(ctx context.Context, accountID int64, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerMatches, accountArg(accountID), opts)
}

// GetHeroesStats returns per-hero stats for a player.
func (c *Client) GetHeroesStats(ctx context.Context, accountID int64, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerHeroes, accountArg(accountID), opts)
}

// GetPlayersPlayedWith returns the players this account played with.
func (c *Client) GetPlayersPlayedWith(ctx context.Context, accountID int64, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerPeers, accountArg(accountID), opts)
}

// GetProPlayersPlayedWith returns the pro players this account played with.
func (c *Client) GetProPlayersPlayedWith(ctx context.Context, accountID int64, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerPros, accountArg(accountID), opts)
}

// GetTotalsInStats returns stat totals for a player.
func (c *Client) GetTotalsInStats(ctx context.Context, accountID int64, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerTotals, accountArg(accountID), opts)
}

// GetCountsInCategories returns match counts per category for a player.
func (c *Client) GetCountsInCategories(ctx context.Context, accountID int64, opts ...QueryOption) (Object, error) {
	return c.object(ctx, epPlayerCounts, accountArg(accountID), opts)
}

// GetStatHistogram returns the distribution of a single stat for a player.
func (c *Client) GetStatHistogram(ctx context.Context, accountID int64, field string, opts ...QueryOption) ([]Object, error) {
	return c.array(ctx, epPlayerHistogram, append(accountArg(accountID), field), opts)
}

// GetWardsPlaced returns the ward placement map for a player.
func (c *Client) GetWardsPlaced(ctx context.Context, accountID int64, opts ...QueryOption) (Object, error) {
	return c.object(ctx, epPlayerWardmap, accountArg(accountID), opts)
}

// GetWordCounts returns words written and read by a player in all chat.
func (c *Client) GetWordCounts(ctx context.Context, accountID int64, opts ...QueryOption) (Object, error) {
	return c.object(ctx, epPlayerWordcloud, accountArg(accountID), opts)
}

// GetRatingHistory returns the player's rating history.
func (c *Client) GetRatingHistory(ctx context.Context, accountID int64) ([]Object, error) {
	return c.array(ctx, epPlayerRatings, accountArg(accountID), nil)
}

// GetHeroRankings returns the player's hero rankings.
func (c *Client) GetHeroRankings(ctx context.Context, accountID int64) ([]Object, error) {
	return c.array(ctx, epPlayerRankings, accountArg(accountID), nil)
}

// GetProPlayers lists pro players.
func (c *Client) GetProPlayers(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epProPlayers, nil, nil)
}

// SearchPlayerByName searches players by persona name.
func (c *Client) SearchPlayerByName(ctx context.Context, name string) ([]Object, error) {
	if name == "" {
		return nil, invalidArgument(epSearch.Name, "search name is empty")
	}
	return c.array(ctx, epSearch, nil, []QueryOption{Param("q", name)})
}
