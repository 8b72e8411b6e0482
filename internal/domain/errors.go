package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrAuth        = errors.New("upstream rejected credential")
	ErrRateLimited = errors.New("rate limited")
	ErrUpstream    = errors.New("upstream failure")
)

var (
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UpstreamError carries the category of a failed Riot call. Raw response
// bodies are never stored here.
type UpstreamError struct {
	Kind       error
	Endpoint   string
	Status     int
	RetryAfter time.Duration
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Endpoint, e.Kind, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// KindForStatus maps an upstream HTTP status to the error category.
func KindForStatus(status int) error {
	switch {
	case status == 404:
		return ErrNotFound
	case status == 401 || status == 403:
		return ErrAuth
	case status == 429:
		return ErrRateLimited
	default:
		return ErrUpstream
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RetryAfter returns the upstream Retry-After hint carried by err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.RetryAfter > 0 {
		return ue.RetryAfter, true
	}
	return 0, false
}
