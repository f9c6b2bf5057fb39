package enforcement

import (
	"context"
	"log/slog"

	"github.com/aurora-platform/justice/pkg/points"
)

// Decision is the outcome of an enforcement check. A blocked action is a
// first-class result, not an error: gated callers always receive a definite
// answer carrying the context needed to render an explanation.
type Decision struct {
	Allowed bool          `json:"allowed"`
	Regime  Regime        `json:"regime"`
	CPValue points.Points `json:"cp_value"`
	Action  Action        `json:"action"`
}

// StateSource supplies a user's current decayed penalty value and regime.
type StateSource interface {
	CurrentState(ctx context.Context, userID string) (points.Points, Regime, error)
}

// StateFunc adapts a function to the StateSource interface.
type StateFunc func(ctx context.Context, userID string) (points.Points, Regime, error)

func (f StateFunc) CurrentState(ctx context.Context, userID string) (points.Points, Regime, error) {
	return f(ctx, userID)
}

// System defines the public contract for enforcement checks.
type System interface {
	Handler() *Handler
	Check(ctx context.Context, userID string, action Action) (*Decision, error)
}

type engine struct {
	states StateSource
	matrix *Matrix
	logger *slog.Logger
}

// New creates an enforcement system over the given state source and matrix.
func New(states StateSource, matrix *Matrix, logger *slog.Logger) System {
	return &engine{
		states: states,
		matrix: matrix,
		logger: logger.With("system", "enforcement"),
	}
}

func (e *engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *engine) Check(ctx context.Context, userID string, action Action) (*Decision, error) {
	cp, regime, err := e.states.CurrentState(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Allowed: e.matrix.IsAllowed(regime, action),
		Regime:  regime,
		CPValue: cp,
		Action:  action,
	}

	if !decision.Allowed {
		e.logger.Info("action blocked",
			"user_id", userID,
			"action", action,
			"regime", regime,
			"cp_value", cp,
		)
	}

	return decision, nil
}
