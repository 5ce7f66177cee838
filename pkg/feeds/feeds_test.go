package feeds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write feeds file: %v", err)
	}
	return file
}

func TestLoadFeedsYAML(t *testing.T) {
	file := writeFile(t, "feeds.yaml", `
feeds:
  - id: pro
    name: Pro matches
    type: pro_matches
    enrich:
      details: true
      replays: true
  - id: miracle
    name: Miracle- ranked
    type: opendota_endpoint
    endpoint: playerMatches
    path_params: ["105248644"]
    query:
      limit: 20
      lobby_type: 7
    request_delay_ms: 250
    config:
      max_matches: 5
`)

	if err := LoadFeeds(file); err != nil {
		t.Fatalf("LoadFeeds returned error: %v", err)
	}
	if got := len(Feeds()); got != 2 {
		t.Fatalf("expected 2 feeds, got %d", got)
	}

	pro, ok := FeedByID("pro")
	if !ok {
		t.Fatalf("expected feed pro to be loaded")
	}
	if pro.Endpoint != "proMatches" || !pro.Enrich.Details || !pro.Enrich.Replays {
		t.Fatalf("unexpected pro feed %+v", pro)
	}
	if pro.RequestDelay() != time.Second {
		t.Fatalf("expected default delay of 1s, got %v", pro.RequestDelay())
	}

	miracle, _ := FeedByID("miracle")
	if miracle.RequestDelay() != 250*time.Millisecond {
		t.Fatalf("unexpected request delay: %v", miracle.RequestDelay())
	}
	if p := miracle.Params(); p["limit"] != 20 {
		t.Fatalf("unexpected params %#v", p)
	}
	if ConfigInt(miracle, ConfigMaxMatchesKey, 0) != 5 {
		t.Fatalf("expected max_matches 5")
	}
}

func TestLoadFeedsJSON(t *testing.T) {
	file := writeFile(t, "feeds.json", `{"feeds":[{"id":"live","name":"Live","type":"opendota_endpoint","endpoint":"live"}]}`)
	if err := LoadFeeds(file); err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if _, ok := FeedByID("live"); !ok {
		t.Fatalf("expected live feed")
	}
}

func TestLoadFeedsRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
feeds:
  - {id: a, name: A, type: pro_matches}
  - {id: a, name: B, type: pro_matches}
`,
		"unknown endpoint": `
feeds:
  - {id: a, name: A, type: opendota_endpoint, endpoint: nope}
`,
		"object endpoint": `
feeds:
  - {id: a, name: A, type: opendota_endpoint, endpoint: matchDetails, path_params: ["1"]}
`,
		"missing path arg": `
feeds:
  - {id: a, name: A, type: opendota_endpoint, endpoint: teamMatches}
`,
		"undeclared query": `
feeds:
  - {id: a, name: A, type: opendota_endpoint, endpoint: live, query: {limit: 1}}
`,
		"pro endpoint override": `
feeds:
  - {id: a, name: A, type: pro_matches, endpoint: publicMatches}
`,
		"empty": `feeds: []`,
	}

	for name, content := range cases {
		file := writeFile(t, "feeds.yaml", content)
		if err := LoadFeeds(file); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}
}

func TestLoadFeedsRequiresPath(t *testing.T) {
	if err := LoadFeeds("  "); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty path error, got %v", err)
	}
}
