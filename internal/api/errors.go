package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Client error taxonomy. Callers branch on these with errors.Is; no
// operation is retried automatically.
var (
	// ErrNoToken means no bearer token is configured.
	ErrNoToken = errors.New("no auth token configured")
	// ErrTokenExpired means the configured bearer token is past its expiry.
	ErrTokenExpired = errors.New("auth token expired")
	// ErrUnauthorized means the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation means a request payload failed client-side validation
	// and was never sent.
	ErrValidation = errors.New("validation failed")
)

// StatusError is returned when the backend responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// Is maps authentication and not-found statuses onto the sentinel errors.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError is returned when a response body is not the expected JSON
// shape. The transport succeeded; only decoding failed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
