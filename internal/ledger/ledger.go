// Package ledger implements the penalty point ledger. A user's penalty state
// is a materialized view over their violation history: contributions
// accumulate as violations are recorded and decay lazily over elapsed time at
// the policy-defined daily rate. Decay is computed on read, never by a
// background scheduler, so recomputation stays deterministic and idempotent.
package ledger

import (
	"time"

	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/pkg/points"
)

// PenaltyState is a user's current decayed penalty value and derived regime.
// It is never written directly by clients; it only changes through recorded
// contributions and elapsed time.
type PenaltyState struct {
	UserID        string             `json:"user_id"`
	CPValue       points.Points      `json:"cp_value"`
	Regime        enforcement.Regime `json:"regime"`
	LastUpdatedAt time.Time          `json:"last_updated_at"`
}
