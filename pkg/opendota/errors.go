package opendota

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a call failed.
type Kind int

const (
	// KindNetwork means no HTTP response was obtained (DNS, refused, timeout, cancellation).
	KindNetwork Kind = iota + 1
	// KindNotFound means the API answered with its "Not Found" error body.
	KindNotFound
	// KindAPI means the API answered with a failure status and a JSON body we do not recognize.
	KindAPI
	// KindMalformedResponse means the body could not be decoded as the expected JSON.
	KindMalformedResponse
	// KindInvalidArgument means the call was rejected before anything was sent.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	case KindAPI:
		return "api"
	case KindMalformedResponse:
		return "malformed_response"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against *Error values.
var (
	ErrNetwork           = errors.New("opendota: network error")
	ErrNotFound          = errors.New("opendota: not found")
	ErrAPI               = errors.New("opendota: api error")
	ErrMalformedResponse = errors.New("opendota: malformed response")
	ErrInvalidArgument   = errors.New("opendota: invalid argument")
)

// notFoundSentinel is the error string OpenDota returns for unknown resources.
const notFoundSentinel = "Not Found"

const notFoundMessage = "invalid arguments; requested resource not found"

// Error is the single failure type returned by Client methods.
type Error struct {
	Kind     Kind
	Endpoint string
	// Status is the HTTP status code, zero when no response was obtained.
	Status  int
	Message string
	// Payload is the decoded error body for KindAPI failures.
	Payload any
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(sentinelFor(e.Kind).Error())
	if e.Endpoint != "" {
		fmt.Fprintf(&b, " [%s]", e.Endpoint)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel matching the error kind.
func (e *Error) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

func sentinelFor(k Kind) error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindNotFound:
		return ErrNotFound
	case KindAPI:
		return ErrAPI
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindInvalidArgument:
		return ErrInvalidArgument
	default:
		return errors.New("opendota: unknown error")
	}
}

// KindOf returns the Kind carried by err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func invalidArgument(endpoint, format string, args ...any) *Error {
	return &Error{
		Kind:     KindInvalidArgument,
		Endpoint: endpoint,
		Message:  fmt.Sprintf(format, args...),
	}
}
