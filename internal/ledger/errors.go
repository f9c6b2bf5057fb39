package ledger

import (
	"errors"
	"net/http"

	"github.com/aurora-platform/justice/internal/policy"
)

// Domain errors for ledger operations.
var (
	ErrNotFound = errors.New("penalty state not found")
)

// MapHTTPStatus maps ledger domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, policy.ErrNoPolicyConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the stable machine-readable code for a ledger error.
func ErrorCode(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "USER_NOT_FOUND"
	}
	if errors.Is(err, policy.ErrNoPolicyConfigured) {
		return "NO_POLICY_CONFIGURED"
	}
	return "INTERNAL"
}
