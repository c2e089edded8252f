package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// Only ValidationError is ever surfaced to callers of a pipeline; the
// sentinels below are recorded in metadata or trigger a fallback.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownDomain indicates a domain identifier outside the enabled set.
	ErrUnknownDomain = errors.New("unknown domain")

	// Infrastructure Errors. These always degrade and never abort a request.

	// ErrCacheMiss indicates the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited indicates the provider's window threshold was reached.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderFailed indicates one provider failed to fetch or normalise.
	ErrProviderFailed = errors.New("provider failed")

	// ErrGeocodeFailed indicates a place name could not be resolved.
	ErrGeocodeFailed = errors.New("geocoding failed")

	// Model Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	// Model-backed features fall back to their deterministic paths.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrModelOutput indicates the model answered but the answer was unusable.
	ErrModelOutput = errors.New("unusable model output")
)

// ValidationError reports a query that is malformed or missing required
// information. Its message is meant to be shown to the user as is.
type ValidationError struct {
	Domain Domain
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for a missing or bad field.
func NewValidationError(d Domain, field, reason string) *ValidationError {
	return &ValidationError{Domain: d, Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.Domain != "" {
		fmt.Fprintf(&b, "%s: ", e.Domain)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s ", e.Field)
	}
	b.WriteString(e.Reason)
	return b.String()
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
