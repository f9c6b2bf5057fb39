package api

import (
	"context"
	"errors"

	"github.com/aurora-platform/justice/internal/casefile"
	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/moderation"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/points"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Policies    policy.System
	Ledger      ledger.System
	Violations  violations.System
	Moderation  moderation.System
	Enforcement enforcement.System
	CaseFiles   casefile.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	policies := policy.New(
		db,
		runtime.Archive,
		runtime.Logger,
		runtime.Pagination,
	)

	states := ledger.New(db, policies, runtime.Logger)

	reports := violations.New(
		db,
		policies,
		states,
		runtime.Logger,
		runtime.Pagination,
	)

	queue := moderation.New(
		db,
		policies,
		reports,
		runtime.Archive,
		runtime.Logger,
		runtime.Pagination,
	)

	// Users with no ledger row have never offended; they check out clean
	// instead of failing the enforcement gate.
	stateSource := enforcement.StateFunc(
		func(ctx context.Context, userID string) (points.Points, enforcement.Regime, error) {
			state, err := states.GetState(ctx, userID)
			if errors.Is(err, ledger.ErrNotFound) {
				return 0, enforcement.RegimeNormal, nil
			}
			if err != nil {
				return 0, enforcement.RegimeNormal, err
			}
			return state.CPValue, state.Regime, nil
		},
	)

	gates := enforcement.New(stateSource, enforcement.DefaultMatrix(), runtime.Logger)

	files := casefile.New(states, reports, nil, runtime.Logger)

	return &Domain{
		Policies:    policies,
		Ledger:      states,
		Violations:  reports,
		Moderation:  queue,
		Enforcement: gates,
		CaseFiles:   files,
	}
}
