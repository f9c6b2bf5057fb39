// Package enforcement implements the regime classifier and the enforcement
// matrix. The regime is a closed restriction tier derived deterministically
// from a penalty value and the active policy thresholds; the matrix maps
// (regime, action) pairs to a definite allow/block answer consulted
// synchronously by every gated collaborator.
package enforcement

import (
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/points"
)

// Regime is a discrete restriction tier. The set is closed; every switch over
// it is exhaustive.
type Regime string

const (
	RegimeNormal     Regime = "NORMAL"
	RegimeSoftFlag   Regime = "SOFT_FLAG"
	RegimeProbation  Regime = "PROBATION"
	RegimeRestricted Regime = "RESTRICTED"
	RegimeLockdown   Regime = "LOCKDOWN"
)

// Regimes lists every tier, ascending by severity.
var Regimes = []Regime{
	RegimeNormal,
	RegimeSoftFlag,
	RegimeProbation,
	RegimeRestricted,
	RegimeLockdown,
}

// Classify returns the highest tier whose threshold is at or below cp.
// A value exactly equal to a threshold enters that threshold's regime.
// Pure function: no side effects or I/O.
func Classify(cp points.Points, p *policy.PolicyVersion) Regime {
	switch {
	case cp >= p.ThresholdLockdown:
		return RegimeLockdown
	case cp >= p.ThresholdRestricted:
		return RegimeRestricted
	case cp >= p.ThresholdProbation:
		return RegimeProbation
	case cp >= p.ThresholdSoftFlag:
		return RegimeSoftFlag
	}
	return RegimeNormal
}
