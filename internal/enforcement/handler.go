package enforcement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/points"
	"github.com/aurora-platform/justice/pkg/routes"
)

// BlockedCode is the stable error code surfaced to any gated action denied
// by the matrix.
const BlockedCode = "AURORA_ENFORCEMENT_BLOCKED"

// ErrUnknownAction indicates a check request named an action outside the
// known taxonomy.
var ErrUnknownAction = errors.New("unknown action")

// Handler provides the enforcement check endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// CheckRequest is the wire shape of an enforcement check.
type CheckRequest struct {
	UserID string `json:"user_id"`
	Action Action `json:"action"`
}

// DenialBody is the 403 response shape rendered to gated collaborators so
// the consuming interface can explain the block and offer an appeal pathway.
type DenialBody struct {
	Error   string        `json:"error"`
	Detail  string        `json:"detail"`
	Regime  Regime        `json:"regime"`
	CPValue points.Points `json:"cp_value"`
	Action  Action        `json:"action"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "enforcement"),
	}
}

// Routes returns the route group definition for enforcement endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/enforcement",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/check", Handler: h.Check},
		},
	}
}

// Check evaluates whether the user's current regime permits the action.
// Allowed checks return 200; denials return 403 with the structured denial
// body. A denial is a definite answer, never an engine error.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if req.UserID == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("user_id required"))
		return
	}
	if !knownAction(req.Action) {
		handlers.RespondCode(w, h.logger, http.StatusBadRequest, "UNKNOWN_ACTION", ErrUnknownAction)
		return
	}

	decision, err := h.sys.Check(r.Context(), req.UserID, req.Action)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	if !decision.Allowed {
		handlers.RespondJSON(w, http.StatusForbidden, DenialBody{
			Error:   BlockedCode,
			Detail:  "action blocked by current enforcement regime",
			Regime:  decision.Regime,
			CPValue: decision.CPValue,
			Action:  decision.Action,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, decision)
}

func knownAction(a Action) bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
