package dolthub

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for API responses, matchable with errors.Is.
var (
	// ErrNotFound indicates the repository or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrForbidden indicates the credentials lack access.
	ErrForbidden = errors.New("permission denied")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQueryFailed indicates a SQL query the API rejected or could
	// not execute.
	ErrQueryFailed = errors.New("query failed")
)

// APIError is a non-2xx response from the DoltHub API.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// Endpoint is the path that was requested.
	Endpoint string
	// Message is the body's error message, when present.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dolthub API error (%d) at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap maps the status code to a sentinel so callers can use
// errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}
