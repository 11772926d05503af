package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Handlers map these to HTTP status
// codes with errors.Is; everything else is treated as an internal error.
var (
	// ErrUnauthenticated means no caller identity was present where one is required.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the caller identity does not own the target entity,
	// or the action is self-referential and disallowed by policy.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means the referenced id does not resolve to an existing document.
	ErrNotFound = errors.New("not found")
	// ErrValidation means a domain precondition was violated.
	ErrValidation = errors.New("validation failed")
	// ErrBackendUnavailable means the document store or blob store call itself failed.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Unauthorizedf wraps ErrUnauthorized with a reason.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnauthorized}, args...)...)
}

// NotFoundf wraps ErrNotFound with the entity and id that failed to resolve.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Validationf wraps ErrValidation with the violated precondition.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Backend wraps a document-store or blob-store failure so it propagates as
// ErrBackendUnavailable without losing the underlying cause.
func Backend(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, op, err)
}
