package opendota

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/samvad-hq/opendota-go/pkg/httpclient"
)

// Normalize decodes a completed response into a generic JSON value, or returns an
// *Error describing why the call failed.
func Normalize(resp httpclient.Response) (any, error) {
	var out any
	if err := normalizeInto(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeInto decodes a success body into out. Failure statuses never touch out.
func normalizeInto(resp httpclient.Response, out any) error {
	if resp == nil {
		return &Error{Kind: KindNetwork, Message: "no response received"}
	}

	status := resp.StatusCode()
	body := resp.Body()

	if status >= 200 && status < 300 {
		if len(bytes.TrimSpace(body)) == 0 {
			return &Error{Kind: KindMalformedResponse, Status: status, Message: "empty body"}
		}
		if err := jsonAPI.Unmarshal(body, out); err != nil {
			return &Error{
				Kind:    KindMalformedResponse,
				Status:  status,
				Message: "decode body: " + bodySnippet(body),
				Err:     err,
			}
		}
		return nil
	}

	return failure(status, body)
}

func failure(status int, body []byte) *Error {
	var payload any
	err := errEmptyBody
	if len(bytes.TrimSpace(body)) > 0 {
		err = jsonAPI.Unmarshal(body, &payload)
	}
	if err != nil {
		return &Error{
			Kind:    KindMalformedResponse,
			Status:  status,
			Message: "non-JSON error body: " + bodySnippet(body),
			Err:     err,
		}
	}

	message := http.StatusText(status)
	if obj, ok := payload.(map[string]any); ok {
		if errField, ok := obj["error"].(string); ok && errField != "" {
			if errField == notFoundSentinel {
				return &Error{Kind: KindNotFound, Status: status, Message: notFoundMessage, Payload: payload}
			}
			message = errField
		}
	}

	return &Error{Kind: KindAPI, Status: status, Message: message, Payload: payload}
}

var errEmptyBody = errors.New("empty body")

func bodySnippet(body []byte) string {
	const maxLen = 256
	if len(body) == 0 {
		return "<empty>"
	}
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
