package feeds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/opendota-go/pkg/opendota"
)

// Package feeds contains the OpenDota feed registry (YAML/JSON) and its fetchers.

// Feed describes one OpenDota listing polled for matches.
type Feed struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Type           string         `json:"type" yaml:"type"`
	Endpoint       string         `json:"endpoint" yaml:"endpoint"`
	PathParams     []string       `json:"path_params" yaml:"path_params"`
	Query          map[string]any `json:"query" yaml:"query"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Enrich         Enrich         `json:"enrich" yaml:"enrich"`
	Config         map[string]any `json:"config" yaml:"config"`
}

// Enrich selects the follow-up lookups made for every new match of a feed.
type Enrich struct {
	Details bool `json:"details" yaml:"details"`
	Replays bool `json:"replays" yaml:"replays"`
}

// Params returns the feed query as call parameters.
func (f Feed) Params() opendota.Params {
	if len(f.Query) == 0 {
		return nil
	}
	p := make(opendota.Params, len(f.Query))
	for k, v := range f.Query {
		p[k] = v
	}
	return p
}

// RequestDelay returns the per-request throttle duration for the feed.
func (f Feed) RequestDelay() time.Duration {
	if f.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(f.RequestDelayMs) * time.Millisecond
}

type registry struct {
	Feeds []Feed `json:"feeds" yaml:"feeds"`
}

var (
	regMu                 sync.RWMutex
	currentReg            registry
	feedsIdx              map[string]Feed
	defaultRequestDelayMs = 1000
)

// Feeds returns a copy of the currently loaded feed registry.
func Feeds() []Feed {
	regMu.RLock()
	defer regMu.RUnlock()

	if len(currentReg.Feeds) == 0 {
		return nil
	}

	out := make([]Feed, len(currentReg.Feeds))
	copy(out, currentReg.Feeds)
	return out
}

// FeedByID returns the feed entry for the given id, if loaded.
func FeedByID(id string) (Feed, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Feed{}, false
	}

	regMu.RLock()
	defer regMu.RUnlock()

	f, ok := feedsIdx[id]
	return f, ok
}

// LoadFeeds loads the feed registry from file and replaces the current one.
func LoadFeeds(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("feeds file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open feeds file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read feeds file: %w", err)
	}

	reg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return err
	}
	if len(reg.Feeds) == 0 {
		return errors.New("feeds file contains no feeds entries")
	}

	idx := make(map[string]Feed, len(reg.Feeds))
	for i := range reg.Feeds {
		f := sanitizeFeed(reg.Feeds[i])
		if err := validateFeed(f); err != nil {
			return fmt.Errorf("feed[%d]: %w", i, err)
		}
		if _, exists := idx[f.ID]; exists {
			return fmt.Errorf("duplicate feed id %q", f.ID)
		}
		reg.Feeds[i] = f
		idx[f.ID] = f
	}

	regMu.Lock()
	currentReg = reg
	feedsIdx = idx
	regMu.Unlock()

	return nil
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (registry, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal},
	}

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registry
		if err := d.fn(data, &reg); err != nil {
			errs = append(errs, fmt.Errorf("decode %s feeds: %w", d.name, err))
			continue
		}
		return reg, nil
	}

	if len(errs) > 0 {
		return registry{}, errors.Join(errs...)
	}
	return registry{}, fmt.Errorf("feeds file extension %q not recognized (expected YAML or JSON)", ext)
}

func sanitizeFeed(f Feed) Feed {
	f.ID = strings.TrimSpace(f.ID)
	f.Name = strings.TrimSpace(f.Name)
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.Endpoint = strings.TrimSpace(f.Endpoint)
	for i, arg := range f.PathParams {
		f.PathParams[i] = strings.TrimSpace(arg)
	}

	if f.Type == TypeProMatches && f.Endpoint == "" {
		f.Endpoint = proMatchesEndpoint
	}
	if f.Config == nil {
		f.Config = map[string]any{}
	}
	if f.RequestDelayMs <= 0 {
		f.RequestDelayMs = defaultRequestDelayMs
	}

	return f
}

func validateFeed(f Feed) error {
	if f.ID == "" {
		return errors.New("id is required")
	}
	if f.Name == "" {
		return fmt.Errorf("name is required for feed %q", f.ID)
	}
	if f.Type == "" {
		return fmt.Errorf("type is required for feed %q", f.ID)
	}
	if f.Endpoint == "" {
		return fmt.Errorf("endpoint is required for feed %q", f.ID)
	}

	if f.Type == TypeProMatches && f.Endpoint != proMatchesEndpoint {
		return fmt.Errorf("feed %q: type %s always uses endpoint %s", f.ID, TypeProMatches, proMatchesEndpoint)
	}

	ep, ok := opendota.Lookup(f.Endpoint)
	if !ok {
		return fmt.Errorf("feed %q: unknown endpoint %q", f.ID, f.Endpoint)
	}
	if ep.Shape != opendota.ShapeArray {
		return fmt.Errorf("feed %q: endpoint %q does not return a list", f.ID, ep.Name)
	}
	if _, err := ep.Expand(f.PathParams...); err != nil {
		return fmt.Errorf("feed %q: %w", f.ID, err)
	}
	for key := range f.Query {
		if !ep.Accepts(key) {
			return fmt.Errorf("feed %q: endpoint %q does not accept query parameter %q", f.ID, ep.Name, key)
		}
	}
	return nil
}
