package opendota

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params maps query parameter names to a scalar or a slice of scalars.
// Nil values, nil pointers and empty slices are treated as absent.
type Params map[string]any

// QueryOption sets one query parameter on a call.
type QueryOption func(Params)

func newParams(opts ...QueryOption) Params {
	p := make(Params, len(opts))
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// BuildQueryString encodes p as "?k=v&k=v". Keys are sorted, slice values become
// repeated pairs in slice order and absent values are dropped. It returns "" when
// nothing is left to encode.
func BuildQueryString(p Params) string {
	values := p.values()
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (p Params) values() url.Values {
	values := make(url.Values, len(p))
	for key, raw := range p {
		if key == "" {
			continue
		}
		for _, s := range flattenValue(raw) {
			values.Add(key, s)
		}
	}
	return values
}

// present lists the keys that would be serialized.
func (p Params) present() []string {
	keys := make([]string, 0, len(p))
	for key, raw := range p {
		if len(flattenValue(raw)) > 0 {
			keys = append(keys, key)
		}
	}
	return keys
}

func flattenValue(raw any) []string {
	if raw == nil {
		return nil
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if s, ok := formatScalar(rv.Index(i).Interface()); ok {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := formatScalar(rv.Interface()); ok {
		return []string{s}
	}
	return nil
}

func formatScalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		return formatScalar(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Param sets an arbitrary query parameter.
func Param(key string, value any) QueryOption {
	return func(p Params) { p[key] = value }
}

// Limit caps the number of matches considered.
func Limit(n int) QueryOption { return Param("limit", n) }

// Offset skips the first n matches.
func Offset(n int) QueryOption { return Param("offset", n) }

// Win filters on match outcome.
func Win(won bool) QueryOption { return Param("win", boolFlag(won)) }

// Patch filters on patch id.
func Patch(id int) QueryOption { return Param("patch", id) }

// GameMode filters on game mode id.
func GameMode(id int) QueryOption { return Param("game_mode", id) }

// LobbyType filters on lobby type id.
func LobbyType(id int) QueryOption { return Param("lobby_type", id) }

// Region filters on region id.
func Region(id int) QueryOption { return Param("region", id) }

// Date keeps matches from the last n days.
func Date(days int) QueryOption { return Param("date", days) }

// LaneRole filters on lane role (1 safe, 2 mid, 3 off, 4 jungle).
func LaneRole(role int) QueryOption { return Param("lane_role", role) }

// HeroID filters on the hero played.
func HeroID(id int) QueryOption { return Param("hero_id", id) }

// IsRadiant filters on the player's side.
func IsRadiant(radiant bool) QueryOption { return Param("is_radiant", boolFlag(radiant)) }

// IncludedAccountIDs keeps matches that include all of the given accounts.
func IncludedAccountIDs(ids ...int64) QueryOption { return Param("included_account_id", ids) }

// ExcludedAccountIDs drops matches that include any of the given accounts.
func ExcludedAccountIDs(ids ...int64) QueryOption { return Param("excluded_account_id", ids) }

// WithHeroIDs keeps matches where the given heroes were on the player's team.
func WithHeroIDs(ids ...int) QueryOption { return Param("with_hero_id", ids) }

// AgainstHeroIDs keeps matches where the given heroes were on the opposing team.
func AgainstHeroIDs(ids ...int) QueryOption { return Param("against_hero_id", ids) }

// Significant toggles the "significant matches only" filter.
func Significant(only bool) QueryOption { return Param("significant", boolFlag(only)) }

// Having requires at least n matches for aggregated rows.
func Having(n int) QueryOption { return Param("having", n) }

// Sort orders rows by the given field, descending.
func Sort(field string) QueryOption { return Param("sort", field) }

// Project selects extra fields to return for each match.
func Project(fields ...string) QueryOption { return Param("project", fields) }

// LessThanMatchID pages backwards from a match id.
func LessThanMatchID(id int64) QueryOption { return Param("less_than_match_id", id) }

// MMRAscending orders public matches by ascending average MMR.
func MMRAscending() QueryOption { return Param("mmr_ascending", 1) }

// MMRDescending orders public matches by descending average MMR.
func MMRDescending() QueryOption { return Param("mmr_descending", 1) }

// Item filters item timing scenarios on an item name.
func Item(name string) QueryOption { return Param("item", name) }

// Scenario selects a misc team scenario.
func Scenario(name string) QueryOption { return Param("scenario", name) }
