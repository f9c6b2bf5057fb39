package policy

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for policy operations.
var (
	ErrNotFound           = errors.New("policy version not found")
	ErrDuplicate          = errors.New("policy version already exists")
	ErrInvalidPolicy      = errors.New("invalid policy")
	ErrNoPolicyConfigured = errors.New("no policy configured")
)

func errInvalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPolicy, detail)
}

// MapHTTPStatus maps policy domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidPolicy):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoPolicyConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the stable machine-readable code for a policy error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "POLICY_NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE_POLICY_VERSION"
	case errors.Is(err, ErrInvalidPolicy):
		return "INVALID_POLICY"
	case errors.Is(err, ErrNoPolicyConfigured):
		return "NO_POLICY_CONFIGURED"
	}
	return "INTERNAL"
}
