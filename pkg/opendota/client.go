// Package opendota is a typed client for the OpenDota REST API.
//
// Every method issues a single GET, decodes the JSON body and reports failures as
// *Error values whose Kind separates transport problems from API answers.
package opendota

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/opendota-go/pkg/httpclient"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public OpenDota API root.
	DefaultBaseURL = "https://api.opendota.com/api/"
	defaultTimeout = 15 * time.Second

	apiKeyParam = "api_key"
)

// Object is a decoded JSON object. Numbers are json.Number values.
type Object = map[string]any

// Client talks to the OpenDota API. It is safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	http      httpclient.Client
	headers   map[string]string
	limiter   *rate.Limiter
	log       Logger
	timeout   time.Duration
	userAgent string
}

// New builds a client. apiKey may be empty; when set it is sent with every request.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		log:     noopLogger{},
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClientWithUserAgent(c.timeout, c.userAgent)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Call invokes the catalog endpoint registered under name. The result is an Object,
// a []Object or, for constants, whatever JSON value the API returned.
func (c *Client) Call(ctx context.Context, name string, pathArgs []string, params Params) (any, error) {
	ep, ok := Lookup(name)
	if !ok {
		return nil, invalidArgument(name, "unknown endpoint")
	}

	switch ep.Shape {
	case ShapeObject:
		var out Object
		if err := c.do(ctx, ep, pathArgs, params, &out); err != nil {
			return nil, err
		}
		return out, nil
	case ShapeArray:
		var out []Object
		if err := c.do(ctx, ep, pathArgs, params, &out); err != nil {
			return nil, err
		}
		if ep.post != nil {
			ep.post(out)
		}
		return out, nil
	default:
		var out any
		if err := c.do(ctx, ep, pathArgs, params, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (c *Client) object(ctx context.Context, ep Endpoint, args []string, opts []QueryOption) (Object, error) {
	var out Object
	if err := c.do(ctx, ep, args, newParams(opts...), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) array(ctx context.Context, ep Endpoint, args []string, opts []QueryOption) ([]Object, error) {
	var out []Object
	if err := c.do(ctx, ep, args, newParams(opts...), &out); err != nil {
		return nil, err
	}
	if ep.post != nil {
		ep.post(out)
	}
	return out, nil
}

// do validates the call against the endpoint, dispatches it and decodes into out.
func (c *Client) do(ctx context.Context, ep Endpoint, args []string, params Params, out any) error {
	path, err := ep.Expand(args...)
	if err != nil {
		return err
	}
	if err := ep.checkParams(params); err != nil {
		return err
	}

	size, err := c.fetch(ctx, path, params, out)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Endpoint == "" {
			apiErr.Endpoint = ep.Name
		}
		c.log.DebugObj("opendota request failed", "opendota_error", map[string]any{
			"endpoint": ep.Name,
			"kind":     KindOf(err).String(),
			"error":    err.Error(),
		})
		return err
	}
	c.log.DebugObj("opendota request completed", "opendota_response", map[string]any{
		"endpoint":   ep.Name,
		"body_bytes": size,
	})
	return nil
}

// fetch builds the URL, issues the GET and normalizes the response into out.
// It returns the body size on success.
func (c *Client) fetch(ctx context.Context, path string, params Params, out any) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.baseURL + strings.TrimPrefix(path, "/") + BuildQueryString(params)
	c.log.DebugObj("opendota request", "opendota_request", map[string]any{
		"url":          target,
		"with_api_key": c.apiKey != "",
	})
	target = c.withAPIKey(target)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, &Error{Kind: KindNetwork, Message: "rate limit wait", Err: err}
		}
	}

	resp, err := c.http.Get(ctx, target, c.headers)
	if err != nil {
		return 0, &Error{Kind: KindNetwork, Err: c.redact(err)}
	}
	if err := normalizeInto(resp, out); err != nil {
		return 0, err
	}
	return len(resp.Body()), nil
}

// redact hides the API key in transport errors, which echo the request URL.
func (c *Client) redact(err error) error {
	var uerr *url.Error
	if c.apiKey == "" || !errors.As(err, &uerr) {
		return err
	}
	cp := *uerr
	cp.URL = strings.ReplaceAll(cp.URL, url.QueryEscape(c.apiKey), "REDACTED")
	return &cp
}

// withAPIKey appends the API key using '&' when target already carries a query string.
func (c *Client) withAPIKey(target string) string {
	if c.apiKey == "" {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + apiKeyParam + "=" + url.QueryEscape(c.apiKey)
}
