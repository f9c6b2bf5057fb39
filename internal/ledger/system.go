package ledger

import (
	"context"
	"database/sql"

	"github.com/aurora-platform/justice/pkg/points"
)

// System defines the public contract for penalty ledger operations.
type System interface {
	Handler() *Handler

	// GetState returns the user's penalty state with decay applied through
	// the current instant. Read-only: nothing is written, so repeated calls
	// with no intervening contributions are idempotent. Fails with
	// ErrNotFound for users with no recorded violations.
	GetState(ctx context.Context, userID string) (*PenaltyState, error)

	// RecordContribution decays the user's accumulated value through now,
	// adds delta, reclassifies the regime, and persists the new state within
	// the caller's transaction. The state row is locked for the duration of
	// the transaction, serializing concurrent contributions per user while
	// leaving other users uncontended.
	RecordContribution(ctx context.Context, tx *sql.Tx, userID string, delta points.Points) (*PenaltyState, error)
}
