package opendota

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/opendota-go/pkg/httpclient"
)

// recordingClient captures requested URLs and replies with a fixed response.
type recordingClient struct {
	urls   []string
	status int
	body   string
	err    error
}

func (r *recordingClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	r.urls = append(r.urls, url)
	if r.err != nil {
		return nil, r.err
	}
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	return stubResponse{status: status, body: r.body}, nil
}

func (r *recordingClient) lastURL(t *testing.T) string {
	t.Helper()
	if len(r.urls) == 0 {
		t.Fatalf("no request was sent")
	}
	return r.urls[len(r.urls)-1]
}

func TestAPIKeyAppendedWithQuestionMarkWithoutQuery(t *testing.T) {
	rc := &recordingClient{body: `{"match_id": 1}`}
	client := New("secret", WithHTTPClient(rc))

	if _, err := client.GetMatchDetails(context.Background(), 1); err != nil {
		t.Fatalf("GetMatchDetails: %v", err)
	}
	want := DefaultBaseURL + "matches/1?api_key=secret"
	if got := rc.lastURL(t); got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestAPIKeyAppendedWithAmpersandAfterQuery(t *testing.T) {
	rc := &recordingClient{body: `{"win": 3, "lose": 2}`}
	client := New("secret", WithHTTPClient(rc))

	if _, err := client.GetWLCount(context.Background(), 87278757, Limit(10)); err != nil {
		t.Fatalf("GetWLCount: %v", err)
	}
	want := DefaultBaseURL + "players/87278757/wl?limit=10&api_key=secret"
	if got := rc.lastURL(t); got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestNoAPIKeyAndNoQueryLeavesBareURL(t *testing.T) {
	rc := &recordingClient{body: `[]`}
	client := New("", WithHTTPClient(rc), WithBaseURL("http://localhost:9000/api"))

	if _, err := client.GetProMatches(context.Background()); err != nil {
		t.Fatalf("GetProMatches: %v", err)
	}
	if got := rc.lastURL(t); got != "http://localhost:9000/api/proMatches" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	rc := &recordingClient{err: errors.New("dial tcp: connection refused")}
	client := New("", WithHTTPClient(rc))

	_, err := client.GetAllHeroes(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Endpoint != "heroes" {
		t.Fatalf("expected endpoint name on error, got %#v", err)
	}
}

func TestNotFoundSurfacesThroughMethods(t *testing.T) {
	rc := &recordingClient{status: http.StatusNotFound, body: `{"error":"Not Found"}`}
	client := New("", WithHTTPClient(rc))

	_, err := client.GetTeam(context.Background(), 15)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShapeMismatchIsMalformed(t *testing.T) {
	rc := &recordingClient{body: `[1, 2, 3]`}
	client := New("", WithHTTPClient(rc))

	if _, err := client.GetPlayerData(context.Background(), 1); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGetReplaysAttachesReplayURL(t *testing.T) {
	rc := &recordingClient{body: `[{"cluster":1,"match_id":5,"replay_salt":"abc"},{"match_id":6}]`}
	client := New("", WithHTTPClient(rc))

	rows, err := client.GetReplays(context.Background(), 5, 6)
	if err != nil {
		t.Fatalf("GetReplays: %v", err)
	}
	if got := rc.lastURL(t); got != DefaultBaseURL+"replays?match_id=5&match_id=6" {
		t.Fatalf("unexpected url %q", got)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0]["replay_url"]; got != "http://replay1.valve.net/570/5_abc.dem.bz2" {
		t.Fatalf("unexpected replay_url %v", got)
	}
	if _, ok := rows[1]["replay_url"]; ok {
		t.Fatalf("row without cluster/salt must not get a replay_url")
	}
}

func TestGetReplaysRequiresMatchIDs(t *testing.T) {
	client := New("", WithHTTPClient(&recordingClient{}))
	if _, err := client.GetReplays(context.Background()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCallByName(t *testing.T) {
	rc := &recordingClient{body: `[{"cluster":2,"match_id":9,"replay_salt":77}]`}
	client := New("", WithHTTPClient(rc))

	got, err := client.Call(context.Background(), "replays", nil, Params{"match_id": []int64{9}})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	rows, ok := got.([]Object)
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected result %#v", got)
	}
	if rows[0]["replay_url"] != "http://replay2.valve.net/570/9_77.dem.bz2" {
		t.Fatalf("unexpected replay_url %v", rows[0]["replay_url"])
	}
}

func TestCallRejectsInvalidInvocations(t *testing.T) {
	rc := &recordingClient{body: `{}`}
	client := New("", WithHTTPClient(rc))
	ctx := context.Background()

	cases := []struct {
		name string
		args []string
		p    Params
	}{
		{name: "doesNotExist"},
		{name: "matchDetails"},
		{name: "matchDetails", args: []string{" "}},
		{name: "playerWL", args: []string{"1"}, p: Params{"bogus": 1}},
	}
	for _, tc := range cases {
		if _, err := client.Call(ctx, tc.name, tc.args, tc.p); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
	if len(rc.urls) != 0 {
		t.Fatalf("invalid calls must not reach the transport, sent %v", rc.urls)
	}
}

func TestCallIgnoresAbsentUndeclaredParams(t *testing.T) {
	rc := &recordingClient{body: `{}`}
	client := New("", WithHTTPClient(rc))

	if _, err := client.Call(context.Background(), "metadata", nil, Params{"limit": nil}); err != nil {
		t.Fatalf("absent params must not be validated: %v", err)
	}
	if got := rc.lastURL(t); got != DefaultBaseURL+"metadata" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestGetConstantsWithAndWithoutResource(t *testing.T) {
	rc := &recordingClient{body: `["heroes","items"]`}
	client := New("", WithHTTPClient(rc))
	ctx := context.Background()

	got, err := client.GetConstants(ctx, "")
	if err != nil {
		t.Fatalf("GetConstants: %v", err)
	}
	if list, ok := got.([]any); !ok || len(list) != 2 {
		t.Fatalf("unexpected constants list %#v", got)
	}
	if rc.lastURL(t) != DefaultBaseURL+"constants" {
		t.Fatalf("unexpected url %q", rc.lastURL(t))
	}

	rc.body = `{"1":{"id":1}}`
	if _, err := client.GetConstants(ctx, "heroes"); err != nil {
		t.Fatalf("GetConstants heroes: %v", err)
	}
	if rc.lastURL(t) != DefaultBaseURL+"constants/heroes" {
		t.Fatalf("unexpected url %q", rc.lastURL(t))
	}
}

func TestPathArgumentsAreEscaped(t *testing.T) {
	rc := &recordingClient{body: `[]`}
	client := New("", WithHTTPClient(rc))

	if _, err := client.GetRecordsOfStat(context.Background(), "kills/../x"); err != nil {
		t.Fatalf("GetRecordsOfStat: %v", err)
	}
	if got := rc.lastURL(t); got != DefaultBaseURL+"records/kills%2F..%2Fx" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestRateLimitedClientHonorsCancelledContext(t *testing.T) {
	rc := &recordingClient{body: `{}`}
	client := New("", WithHTTPClient(rc), WithRateLimit(1))

	if _, err := client.GetMetadata(context.Background()); err != nil {
		t.Fatalf("first call should consume the burst: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.GetMetadata(ctx); !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork on cancelled wait, got %v", err)
	}
	if len(rc.urls) != 1 {
		t.Fatalf("expected one request, got %d", len(rc.urls))
	}
}

func TestClientAgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/search":
			if r.URL.Query().Get("q") != "Miracle-" || r.URL.Query().Get("api_key") != "k" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`[{"account_id": 105248644, "personaname": "Miracle-"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not Found"}`))
		}
	}))
	defer srv.Close()

	client := New("k", WithBaseURL(srv.URL+"/api"), WithTimeout(2*time.Second))
	rows, err := client.SearchPlayerByName(context.Background(), "Miracle-")
	if err != nil {
		t.Fatalf("SearchPlayerByName: %v", err)
	}
	if len(rows) != 1 || rows[0]["personaname"] != "Miracle-" {
		t.Fatalf("unexpected rows %#v", rows)
	}

	if _, err := client.GetTeam(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNetworkErrorDoesNotLeakAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	client := New("topsecret", WithBaseURL(addr), WithTimeout(time.Second))
	_, err := client.GetServiceHealth(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if strings.Contains(err.Error(), "topsecret") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}
