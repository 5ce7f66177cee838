package publishers

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/samvad-hq/opendota-go/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	FeedID      string       `json:"feed_id"`
	FeedName    string       `json:"feed_name"`
	Match       domain.Match `json:"match"`
	CollectedAt time.Time    `json:"collected_at"`
}

// NewEvent constructs an Event for the given feed + match.
func NewEvent(feedID, feedName string, match domain.Match) Event {
	return Event{
		FeedID:      feedID,
		FeedName:    feedName,
		Match:       match,
		CollectedAt: time.Now().UTC(),
	}
}

// Attributes are the routing attributes attached to queue messages.
func (e Event) Attributes() map[string]string {
	return map[string]string{
		"feed_id":  e.FeedID,
		"match_id": e.Match.ID,
	}
}

var eventJSON = jsoniter.ConfigCompatibleWithStandardLibrary

func encodeEvent(evt Event) ([]byte, error) {
	return eventJSON.Marshal(evt)
}
