package feeds

import (
	"strconv"
	"strings"
)

const (
	// ConfigIDFieldKey names the row field holding the match id (default match_id).
	ConfigIDFieldKey = "id_field"
	// ConfigMaxMatchesKey caps the matches taken from one poll, newest rows first.
	ConfigMaxMatchesKey = "max_matches"

	defaultIDField = "match_id"
)

// ConfigString returns the trimmed string value for key from feed.Config or a fallback.
func ConfigString(feed Feed, key, fallback string) string {
	if raw, ok := feed.Config[key]; ok {
		if val, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}

// ConfigInt returns the integer value for key from feed.Config or a fallback.
// Numeric strings are accepted.
func ConfigInt(feed Feed, key string, fallback int) int {
	raw, ok := feed.Config[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}
