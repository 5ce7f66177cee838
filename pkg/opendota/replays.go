package opendota

import (
	"context"
	"fmt"
)

const replayURLTemplate = "http://replay%s.valve.net/570/%s_%s.dem.bz2"

// ReplayURL builds the Valve CDN download link for a replay.
func ReplayURL(cluster, matchID, replaySalt string) string {
	return fmt.Sprintf(replayURLTemplate, cluster, matchID, replaySalt)
}

// attachReplayURLs sets replay_url on every row carrying cluster, match_id and replay_salt.
func attachReplayURLs(rows []Object) {
	for _, row := range rows {
		if row == nil {
			continue
		}
		cluster, ok1 := formatScalar(row["cluster"])
		matchID, ok2 := formatScalar(row["match_id"])
		salt, ok3 := formatScalar(row["replay_salt"])
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		row["replay_url"] = ReplayURL(cluster, matchID, salt)
	}
}

// GetReplays returns replay metadata for the given matches, each row extended with a
// replay_url pointing at the replay CDN.
func (c *Client) GetReplays(ctx context.Context, matchIDs ...int64) ([]Object, error) {
	if len(matchIDs) == 0 {
		return nil, invalidArgument(epReplays.Name, "at least one match id is required")
	}
	return c.array(ctx, epReplays, nil, []QueryOption{Param("match_id", matchIDs)})
}
