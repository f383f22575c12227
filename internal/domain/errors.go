package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound signals a lookup miss. It is a sentinel, not a PMSError: the
// client converts it into an absent result for guest/room lookups instead of
// surfacing it.
var ErrNotFound = errors.New("pms: not found")

// PMSError is the typed failure surfaced to the tool layer. Status mirrors
// HTTP semantics (401 auth, 404 not found, 500 upstream contract, 501 not
// implemented, 503 unavailable); 0 means unset.
type PMSError struct {
	Message string
	Status  int
	Details map[string]any
}

func (e *PMSError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// NewAuthConfigError reports missing client credentials.
func NewAuthConfigError(msg string) *PMSError {
	return &PMSError{Message: msg, Status: http.StatusUnauthorized}
}

// NewAuthFailure reports a rejected token exchange. details may carry the
// upstream status and body text.
func NewAuthFailure(msg string, details map[string]any) *PMSError {
	return &PMSError{Message: msg, Status: http.StatusUnauthorized, Details: details}
}

// NewContractError reports a malformed or incomplete success response.
func NewContractError(msg string) *PMSError {
	return &PMSError{Message: msg, Status: http.StatusInternalServerError}
}

// NewUpstreamFailure reports a non-2xx upstream response after retries were
// exhausted, carrying the upstream status verbatim.
func NewUpstreamFailure(status int, msg string) *PMSError {
	return &PMSError{Message: msg, Status: status}
}

// NewServiceUnavailable reports a transport-level failure or retry exhaustion.
func NewServiceUnavailable(msg string) *PMSError {
	return &PMSError{Message: msg, Status: http.StatusServiceUnavailable}
}

// NewNotImplemented marks an operation whose real-mode path has not been
// integrated yet.
func NewNotImplemented(op string) *PMSError {
	return &PMSError{
		Message: fmt.Sprintf("%s is not implemented for the real API; set SYNXIS_PMS_MOCK_MODE=true", op),
		Status:  http.StatusNotImplemented,
	}
}
