package policy

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/routes"
)

// Handler provides HTTP endpoints for policy operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "policy"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for policy endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/policy",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/current", Handler: h.Current},
			{Method: "GET", Pattern: "/{version}", Handler: h.Find},
			{Method: "POST", Pattern: "/activate", Handler: h.Activate},
		},
	}
}

// Current returns the active policy version.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.GetActive(r.Context())
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Find returns a historical policy version by its version path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, err := h.sys.GetVersion(r.Context(), r.PathValue("version"))
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// List returns paginated policy history, newest activation first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Activate decodes a governance snapshot and atomically activates it.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	var cmd ActivateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Activate(r.Context(), cmd)
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, p)
}
