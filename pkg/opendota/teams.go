package opendota

import (
	"context"
	"strconv"
)

func teamArg(teamID int64) []string {
	return []string{strconv.FormatInt(teamID, 10)}
}

// GetLeagueData lists leagues.
func (c *Client) GetLeagueData(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epLeagues, nil, nil)
}

// GetAllTeams lists teams.
func (c *Client) GetAllTeams(ctx context.Context) ([]Object, error) {
	return c.array(ctx, epTeams, nil, nil)
}

// GetTeam returns a single team.
func (c *Client) GetTeam(ctx context.Context, teamID int64) (Object, error) {
	return c.object(ctx, epTeam, teamArg(teamID), nil)
}

// GetTeamMatches lists matches played by a team.
func (c *Client) GetTeamMatches(ctx context.Context, teamID int64) ([]Object, error) {
	return c.array(ctx, epTeamMatches, teamArg(teamID), nil)
}

// GetTeamPlayers lists players who played for a team.
func (c *Client) GetTeamPlayers(ctx context.Context, teamID int64) ([]Object, error) {
	return c.array(ctx, epTeamPlayers, teamArg(teamID), nil)
}

// GetTeamHeroes lists heroes played by a team.
func (c *Client) GetTeamHeroes(ctx context.Context, teamID int64) ([]Object, error) {
	return c.array(ctx, epTeamHeroes, teamArg(teamID), nil)
}
