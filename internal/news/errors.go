package news

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned before any network call when no credential is
// configured. Callers should route the user into the setup flow.
var ErrMissingAPIKey = errors.New("news API key is required (set NEWSDIGEST_API_KEY or api_key in the config file)")

// StatusError reports an upstream failure. The message is user-facing and
// shown verbatim in the error banner.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string { return e.Message }

func statusError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return &StatusError{StatusCode: statusCode, Message: "Invalid API key. Please check your News API key."}
	case http.StatusTooManyRequests:
		return &StatusError{StatusCode: statusCode, Message: "API rate limit exceeded. Please try again later."}
	default:
		return &StatusError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("API request failed: %s", http.StatusText(statusCode)),
		}
	}
}
