package moderation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/points"
	"github.com/aurora-platform/justice/pkg/routes"
)

// Handler provides HTTP endpoints for the moderation queue and appeals.
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
		logger:     logger.With("handler", "moderation"),
		pagination: pagination,
	}
}

// Routes returns the route group definitions for moderation and appeal endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/mod",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/violations/pending", Handler: h.PendingViolations},
					{Method: "GET", Pattern: "/appeals/pending", Handler: h.PendingAppeals},
					{Method: "GET", Pattern: "/cases/{id}", Handler: h.Find},
					{Method: "POST", Pattern: "/violations/{id}/decision", Handler: h.Decide},
					{Method: "POST", Pattern: "/appeals/{id}/decision", Handler: h.Decide},
				},
			},
			{
				Prefix: "/appeals",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.Appeal},
				},
			},
		},
	}
}

// PendingViolations lists undecided VIOLATION cases, riskiest first. An
// optional min_risk query parameter excludes cases below it.
func (h *Handler) PendingViolations(w http.ResponseWriter, r *http.Request) {
	h.listPending(w, r, SubjectViolation)
}

// PendingAppeals lists undecided APPEAL cases, riskiest first.
func (h *Handler) PendingAppeals(w http.ResponseWriter, r *http.Request) {
	h.listPending(w, r, SubjectAppeal)
}

func (h *Handler) listPending(w http.ResponseWriter, r *http.Request, subject SubjectType) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	var minRisk *points.Points
	if raw := r.URL.Query().Get("min_risk"); raw != "" {
		p, err := points.Parse(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		minRisk = &p
	}

	result, err := h.sys.ListPending(r.Context(), subject, minRisk, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single case by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}

// Decide closes a pending case from a JSON DecideCommand body. Repeated
// submissions return 409.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Decide(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Appeal opens an APPEAL case from a JSON AppealCommand body.
func (h *Handler) Appeal(w http.ResponseWriter, r *http.Request) {
	var cmd AppealCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Appeal(r.Context(), cmd)
	if err != nil {
		handlers.RespondCode(w, h.logger, MapHTTPStatus(err), ErrorCode(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, c)
}
