package moderation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aurora-platform/justice/internal/policy"
)

// Domain errors for moderation operations.
var (
	ErrNotFound             = errors.New("moderation case not found")
	ErrAlreadyDecided       = errors.New("moderation case already decided")
	ErrInvalidDecision      = errors.New("invalid decision")
	ErrMissingJustification = errors.New("rejection requires a justification note")
	ErrInvalidRequest       = errors.New("invalid moderation request")
)

func errInvalid(sentinel error, detail string) error {
	return fmt.Errorf("%w: %s", sentinel, detail)
}

// MapHTTPStatus maps moderation domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDecision),
		errors.Is(err, ErrMissingJustification),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, policy.ErrNoPolicyConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the stable machine-readable code for a moderation error.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "CASE_NOT_FOUND"
	case errors.Is(err, ErrAlreadyDecided):
		return "ALREADY_DECIDED"
	case errors.Is(err, ErrInvalidDecision):
		return "INVALID_DECISION"
	case errors.Is(err, ErrMissingJustification):
		return "MISSING_JUSTIFICATION"
	case errors.Is(err, ErrInvalidRequest):
		return "INVALID_REQUEST"
	case errors.Is(err, policy.ErrNoPolicyConfigured):
		return "POLICY_UNAVAILABLE"
	}
	return "INTERNAL"
}
