package httpclient

import "context"

// Response is the minimal view of a completed HTTP exchange.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts GET calls so API bindings can swap the transport for a test double.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
