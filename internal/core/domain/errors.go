package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every failure surfaced by the core wraps exactly one of these,
// so callers branch with errors.Is instead of inspecting HTTP codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrServer          = errors.New("server error")
	ErrNetwork         = errors.New("network error")
)

// Flow-level sentinels. ErrOTPExpired is a local validation failure: the
// request never reaches the network.
var (
	ErrOTPExpired        = fmt.Errorf("otp expired: %w", ErrValidation)
	ErrInvalidTransition = errors.New("invalid session state transition")
)

// APIError is the normalized failure shape returned by the request executor
// and by local pre-network checks. Status is zero for local errors.
type APIError struct {
	Kind    error
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (http %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the kind so errors.Is(err, domain.ErrNotFound) works.
func (e *APIError) Unwrap() error { return e.Kind }

// Invalid builds a local validation APIError that never touched the network.
func Invalid(message string) *APIError {
	return &APIError{Kind: ErrValidation, Message: message}
}

// FromStatus maps an HTTP failure status and server message onto the taxonomy.
func FromStatus(status int, message string) *APIError {
	kind := ErrServer
	switch {
	case status == http.StatusUnauthorized:
		kind = ErrUnauthenticated
	case status == http.StatusForbidden:
		kind = ErrForbidden
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status >= 400 && status < 500:
		kind = ErrValidation
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Kind: kind, Status: status, Message: message}
}

// Network wraps a transport failure (DNS, timeout, connection refused).
func Network(err error) *APIError {
	return &APIError{Kind: ErrNetwork, Message: err.Error()}
}
