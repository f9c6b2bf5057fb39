package ledger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/routes"
)

// Handler provides HTTP endpoints for penalty state reads.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "ledger"),
	}
}

// Routes returns the route group definition for penalty state endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/cp",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{userId}", Handler: h.GetState},
		},
	}
}

// GetState returns the user's current decayed penalty state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("user id required"))
		return
	}

	state, err := h.sys.GetState(r.Context(), userID)
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}
