package opendota

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Shape is the JSON shape an endpoint returns.
type Shape int

const (
	ShapeObject Shape = iota
	ShapeArray
	// ShapeAny is used where the same path returns an object or an array.
	ShapeAny
)

func (s Shape) String() string {
	switch s {
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "any"
	}
}

// Endpoint describes one OpenDota GET route.
type Endpoint struct {
	Name        string
	Path        string
	PathParams  []string
	QueryParams []string
	Shape       Shape

	// post rewrites decoded array rows before they are returned.
	post func([]Object)
}

// Expand substitutes args, in PathParams order, into the path template.
func (e Endpoint) Expand(args ...string) (string, error) {
	if len(args) != len(e.PathParams) {
		return "", invalidArgument(e.Name, "expected %d path arguments %v, got %d", len(e.PathParams), e.PathParams, len(args))
	}
	path := e.Path
	for i, name := range e.PathParams {
		arg := strings.TrimSpace(args[i])
		if arg == "" {
			return "", invalidArgument(e.Name, "path argument %q is empty", name)
		}
		path = strings.Replace(path, "{"+name+"}", url.PathEscape(arg), 1)
	}
	return path, nil
}

// Accepts reports whether key is a declared query parameter.
func (e Endpoint) Accepts(key string) bool {
	for _, q := range e.QueryParams {
		if q == key {
			return true
		}
	}
	return false
}

func (e Endpoint) checkParams(p Params) error {
	keys := p.present()
	sort.Strings(keys)
	for _, key := range keys {
		if !e.Accepts(key) {
			return invalidArgument(e.Name, "query parameter %q is not accepted", key)
		}
	}
	return nil
}

// newEndpoint derives PathParams from the {placeholders} in path.
func newEndpoint(name, path string, shape Shape, query ...string) Endpoint {
	var params []string
	rest := path
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			panic(fmt.Sprintf("opendota: unterminated placeholder in %q", path))
		}
		params = append(params, rest[start+1:start+end])
		rest = rest[start+end+1:]
	}
	return Endpoint{Name: name, Path: path, PathParams: params, QueryParams: query, Shape: shape}
}

var playerFilters = []string{
	"limit", "offset", "win", "patch", "game_mode", "lobby_type", "region", "date",
	"lane_role", "hero_id", "is_radiant", "included_account_id", "excluded_account_id",
	"with_hero_id", "against_hero_id", "significant", "having", "sort",
}

func withPlayerFilters(extra ...string) []string {
	out := make([]string, 0, len(playerFilters)+len(extra))
	out = append(out, playerFilters...)
	return append(out, extra...)
}

var (
	epMatchDetails = newEndpoint("matchDetails", "matches/{match_id}", ShapeObject)

	epPlayer          = newEndpoint("player", "players/{account_id}", ShapeObject)
	epPlayerWL        = newEndpoint("playerWL", "players/{account_id}/wl", ShapeObject, playerFilters...)
	epPlayerRecent    = newEndpoint("playerRecentMatches", "players/{account_id}/recentMatches", ShapeArray)
	epPlayerMatches   = newEndpoint("playerMatches", "players/{account_id}/matches", ShapeArray, withPlayerFilters("project")...)
	epPlayerHeroes    = newEndpoint("playerHeroes", "players/{account_id}/heroes", ShapeArray, playerFilters...)
	epPlayerPeers     = newEndpoint("playerPeers", "players/{account_id}/peers", ShapeArray, playerFilters...)
	epPlayerPros      = newEndpoint("playerPros", "players/{account_id}/pros", ShapeArray, playerFilters...)
	epPlayerTotals    = newEndpoint("playerTotals", "players/{account_id}/totals", ShapeArray, playerFilters...)
	epPlayerCounts    = newEndpoint("playerCounts", "players/{account_id}/counts", ShapeObject, playerFilters...)
	epPlayerHistogram = newEndpoint("playerHistogram", "players/{account_id}/histograms/{field}", ShapeArray, playerFilters...)
	epPlayerWardmap   = newEndpoint("playerWardmap", "players/{account_id}/wardmap", ShapeObject, playerFilters...)
	epPlayerWordcloud = newEndpoint("playerWordcloud", "players/{account_id}/wordcloud", ShapeObject, playerFilters...)
	epPlayerRatings   = newEndpoint("playerRatings", "players/{account_id}/ratings", ShapeArray)
	epPlayerRankings  = newEndpoint("playerRankings", "players/{account_id}/rankings", ShapeArray)

	epProPlayers    = newEndpoint("proPlayers", "proPlayers", ShapeArray)
	epProMatches    = newEndpoint("proMatches", "proMatches", ShapeArray, "less_than_match_id")
	epPublicMatches = newEndpoint("publicMatches", "publicMatches", ShapeArray, "mmr_ascending", "mmr_descending", "less_than_match_id")
	epParsedMatches = newEndpoint("parsedMatches", "parsedMatches", ShapeArray, "less_than_match_id")
	epExplorer      = newEndpoint("explorer", "explorer", ShapeObject, "sql")
	epMetadata      = newEndpoint("metadata", "metadata", ShapeObject)
	epDistributions = newEndpoint("distributions", "distributions", ShapeObject)
	epSearch        = newEndpoint("search", "search", ShapeArray, "q")
	epRankings      = newEndpoint("rankings", "rankings", ShapeObject, "hero_id")
	epBenchmarks    = newEndpoint("benchmarks", "benchmarks", ShapeObject, "hero_id")
	epStatus        = newEndpoint("status", "status", ShapeObject)
	epHealth        = newEndpoint("health", "health", ShapeObject)

	epHeroes             = newEndpoint("heroes", "heroes", ShapeArray)
	epHeroMatches        = newEndpoint("heroMatches", "heroes/{hero_id}/matches", ShapeArray)
	epHeroMatchups       = newEndpoint("heroMatchups", "heroes/{hero_id}/matchups", ShapeArray)
	epHeroDurations      = newEndpoint("heroDurations", "heroes/{hero_id}/durations", ShapeArray)
	epHeroPlayers        = newEndpoint("heroPlayers", "heroes/{hero_id}/players", ShapeArray)
	epHeroItemPopularity = newEndpoint("heroItemPopularity", "heroes/{hero_id}/itemPopularity", ShapeObject)
	epHeroStats          = newEndpoint("heroStats", "heroStats", ShapeArray)

	epLeagues = newEndpoint("leagues", "leagues", ShapeArray)

	epTeams       = newEndpoint("teams", "teams", ShapeArray)
	epTeam        = newEndpoint("team", "teams/{team_id}", ShapeObject)
	epTeamMatches = newEndpoint("teamMatches", "teams/{team_id}/matches", ShapeArray)
	epTeamPlayers = newEndpoint("teamPlayers", "teams/{team_id}/players", ShapeArray)
	epTeamHeroes  = newEndpoint("teamHeroes", "teams/{team_id}/heroes", ShapeArray)

	epReplays = withPost(newEndpoint("replays", "replays", ShapeArray, "match_id"), attachReplayURLs)
	epRecords = newEndpoint("records", "records/{field}", ShapeArray)
	epLive    = newEndpoint("live", "live", ShapeArray)

	epItemScenarios     = newEndpoint("itemScenarios", "scenarios/itemTimings", ShapeArray, "item", "hero_id")
	epLaneRoleScenarios = newEndpoint("laneRoleScenarios", "scenarios/laneRoles", ShapeArray, "lane_role", "hero_id")
	epMiscScenarios     = newEndpoint("miscScenarios", "scenarios/misc", ShapeArray, "scenario")

	epSchema            = newEndpoint("schema", "schema", ShapeArray)
	epConstantResources = newEndpoint("constantResources", "constants", ShapeAny)
	epConstants         = newEndpoint("constants", "constants/{resource}", ShapeAny)
)

func withPost(e Endpoint, post func([]Object)) Endpoint {
	e.post = post
	return e
}

var catalog = []Endpoint{
	epMatchDetails,
	epPlayer, epPlayerWL, epPlayerRecent, epPlayerMatches, epPlayerHeroes, epPlayerPeers,
	epPlayerPros, epPlayerTotals, epPlayerCounts, epPlayerHistogram, epPlayerWardmap,
	epPlayerWordcloud, epPlayerRatings, epPlayerRankings,
	epProPlayers, epProMatches, epPublicMatches, epParsedMatches, epExplorer, epMetadata,
	epDistributions, epSearch, epRankings, epBenchmarks, epStatus, epHealth,
	epHeroes, epHeroMatches, epHeroMatchups, epHeroDurations, epHeroPlayers,
	epHeroItemPopularity, epHeroStats,
	epLeagues,
	epTeams, epTeam, epTeamMatches, epTeamPlayers, epTeamHeroes,
	epReplays, epRecords, epLive,
	epItemScenarios, epLaneRoleScenarios, epMiscScenarios,
	epSchema, epConstantResources, epConstants,
}

var catalogIdx = func() map[string]Endpoint {
	idx := make(map[string]Endpoint, len(catalog))
	for _, e := range catalog {
		if _, dup := idx[e.Name]; dup {
			panic(fmt.Sprintf("opendota: duplicate endpoint %q", e.Name))
		}
		idx[e.Name] = e
	}
	return idx
}()

// Endpoints returns the catalog sorted by name.
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the endpoint registered under name.
func Lookup(name string) (Endpoint, bool) {
	e, ok := catalogIdx[strings.TrimSpace(name)]
	return e, ok
}
