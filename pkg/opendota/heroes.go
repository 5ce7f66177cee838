package opendota

import (
	"context"
	"strconv"
)

func heroArg(heroID int) []string {
	return []string{strconv.Itoa(heroID)}
}

// GetAllHeroes lists all heroes.
func (c *Client) GetAllHeroes(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epHeroes, nil, nil)
}

// GetRecentMatchesWithHero lists recent matches featuring a hero.
func (c *Client) GetRecentMatchesWithHero(ctx context.Context, heroID int) ([]Object, error) {
	return c.array(ctx, epHeroMatches, heroArg(heroID), nil)
}

// GetMatchupsWithHero returns the hero's results against every other hero.
func (c *Client) GetMatchupsWithHero(ctx context.Context, heroID int) ([]Object, error) {
	return c.array(ctx, epHeroMatchups, heroArg(heroID), nil)
}

// GetDurationsWithHero returns the hero's performance by match duration.
func (c *Client) GetDurationsWithHero(ctx context.Context, heroID int) ([]Object, error) {
	return c.array(ctx, epHeroDurations, heroArg(heroID), nil)
}

// GetPlayersByHeroPlayed lists players who played a hero.
func (c *Client) GetPlayersByHeroPlayed(ctx context.Context, heroID int) ([]Object, error) {
	return c.array(ctx, epHeroPlayers, heroArg(heroID), nil)
}

// GetItemPopularityForHero returns item popularity by game phase, from pro matches.
func (c *Client) GetItemPopularityForHero(ctx context.Context, heroID int) (Object, error) {
	return c.object(ctx, epHeroItemPopularity, heroArg(heroID), nil)
}

// GetAllHeroesStats returns recent stats for all heroes.
func (c *Client) GetAllHeroesStats(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epHeroStats, nil, nil)
}

// GetHeroTopPlayers returns the top players of a hero.
func (c *Client) GetHeroTopPlayers(ctx context.Context, heroID int) (Object, error) {
	return c.object(ctx, epRankings, nil, []QueryOption{HeroID(heroID)})
}

// GetHeroAverageStats returns benchmark stats for a hero.
func (c *Client) GetHeroAverageStats(ctx context.Context, heroID int) (Object, error) {
	return c.object(ctx, epBenchmarks, nil, []QueryOption{HeroID(heroID)})
}
