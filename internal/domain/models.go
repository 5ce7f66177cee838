package domain

import "strings"

// Domain contains core models and interfaces.

// Match is one harvested match. Summary holds the feed row the match was found in.
type Match struct {
	ID        string         `json:"match_id"`
	FeedID    string         `json:"feed_id"`
	Summary   map[string]any `json:"summary,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	ReplayURL string         `json:"replay_url,omitempty"`
}

// Key identifies the match for deduplication.
func (m Match) Key() string {
	return strings.TrimSpace(m.ID)
}
