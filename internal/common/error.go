// Package common defines shared constants and sentinel errors used across
// the companion client layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Validation errors (caught locally, no network call is made).
	ErrValidation = errors.New("validation error")

	// Auth errors (bad credentials or a rejected token).
	ErrAuth = errors.New("unauthorized")

	// Conflict on signup (account with the same email already exists).
	ErrConflict = errors.New("already exists")

	// Chat backpressure: a send was attempted while one is in flight.
	ErrBusy = errors.New("request already in flight")

	// Transport-level failures.
	ErrTimeout     = errors.New("request timed out")
	ErrUnavailable = errors.New("server unavailable")
)

// BackendError is a non-2xx HTTP response from the backend. Detail carries
// the message extracted from the response body's "detail" field when the
// backend provided one.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Message returns the user-displayable text for the error, falling back to
// the given generic string when the backend supplied no detail.
func (e *BackendError) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}
