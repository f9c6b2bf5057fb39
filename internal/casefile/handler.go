package casefile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/routes"
)

// ErrInvalidUser indicates a missing or malformed user identifier.
var ErrInvalidUser = errors.New("invalid user id")

// Handler provides the HTTP endpoint for case file lookup.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "casefile"),
	}
}

// Routes returns the route group definition for case file endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/case",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{userId}", Handler: h.Get},
		},
	}
}

// Get returns the aggregated case file for the user in the path.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	file, err := h.sys.Build(r.Context(), r.PathValue("userId"))
	if err != nil {
		handlers.RespondCode(w, h.logger, mapStatus(err), errorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, file)
}

func mapStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUser):
		return "INVALID_USER"
	case errors.Is(err, ledger.ErrNotFound):
		return "USER_NOT_FOUND"
	}
	return "INTERNAL"
}
