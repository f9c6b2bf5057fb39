package violations

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aurora-platform/justice/internal/policy"
)

// Domain errors for violation operations.
var (
	ErrNotFound        = errors.New("violation not found")
	ErrInvalidRequest  = errors.New("invalid violation request")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSeverity = errors.New("invalid severity")
)

func errInvalid(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// MapHTTPStatus maps violation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidSeverity):
		return http.StatusBadRequest
	case errors.Is(err, policy.ErrNoPolicyConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the stable machine-readable code for a violation error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "VIOLATION_NOT_FOUND"
	case errors.Is(err, ErrInvalidCategory):
		return "INVALID_CATEGORY"
	case errors.Is(err, ErrInvalidSeverity):
		return "INVALID_SEVERITY"
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, policy.ErrNoPolicyConfigured):
		return "POLICY_UNAVAILABLE"
	}
	return "INTERNAL"
}
