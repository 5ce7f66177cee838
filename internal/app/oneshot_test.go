package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

type stubCaller struct {
	name   string
	args   []string
	params opendota.Params
	result any
	err    error
}

func (s *stubCaller) Call(_ context.Context, name string, args []string, params opendota.Params) (any, error) {
	s.name, s.args, s.params = name, args, params
	return s.result, s.err
}

func TestParseQueryGroupsRepeatedKeys(t *testing.T) {
	params, err := ParseQuery([]string{"limit=5", "included_account_id=1", "included_account_id=2", "sql=select 1=1"})
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	want := opendota.Params{
		"limit":               "5",
		"included_account_id": []string{"1", "2"},
		"sql":                 "select 1=1",
	}
	if !reflect.DeepEqual(params, want) {
		t.Fatalf("params = %#v, want %#v", params, want)
	}
	if got := opendota.BuildQueryString(params); got != "?included_account_id=1&included_account_id=2&limit=5&sql=select+1%3D1" {
		t.Fatalf("unexpected query string %q", got)
	}
}

func TestParseQueryRejectsMalformedPairs(t *testing.T) {
	for _, pair := range []string{"limit", "=5"} {
		if _, err := ParseQuery([]string{pair}); err == nil {
			t.Fatalf("expected error for %q", pair)
		}
	}
	if params, err := ParseQuery(nil); err != nil || params != nil {
		t.Fatalf("empty input should yield nil params, got %v %v", params, err)
	}
}

func TestQueryWritesIndentedJSON(t *testing.T) {
	caller := &stubCaller{result: []opendota.Object{{"match_id": json.Number("7812345678901"), "radiant_win": true}}}
	var buf bytes.Buffer

	if err := Query(context.Background(), caller, "proMatches", nil, nil, &buf); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if caller.name != "proMatches" {
		t.Fatalf("unexpected endpoint %q", caller.name)
	}
	out := buf.String()
	if !strings.Contains(out, `"match_id": 7812345678901`) || !strings.HasSuffix(out, "\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestQueryReturnsCallError(t *testing.T) {
	callErr := &opendota.Error{Kind: opendota.KindNotFound}
	var buf bytes.Buffer
	err := Query(context.Background(), &stubCaller{err: callErr}, "team", []string{"1"}, nil, &buf)
	if !errors.Is(err, opendota.ErrNotFound) || buf.Len() != 0 {
		t.Fatalf("expected ErrNotFound and no output, got %v %q", err, buf.String())
	}
}

func TestListEndpointsIncludesCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := ListEndpoints(&buf); err != nil {
		t.Fatalf("ListEndpoints: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"NAME", "replays", "players/{account_id}/wl", "match_id"} {
		if !strings.Contains(out, want) {
			t.Fatalf("listing missing %q:\n%s", want, out)
		}
	}
}
