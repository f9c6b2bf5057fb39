package policy

import (
	"context"
	"time"

	"github.com/aurora-platform/justice/pkg/pagination"
)

// System defines the public contract for the policy store.
type System interface {
	Handler() *Handler

	// GetActive returns the currently active policy version.
	// Fails with ErrNoPolicyConfigured before first activation.
	GetActive(ctx context.Context) (*PolicyVersion, error)

	// GetVersion returns a historical policy version for audit lookups.
	GetVersion(ctx context.Context, version string) (*PolicyVersion, error)

	// List returns policy history, newest activation first.
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[PolicyVersion], error)

	// Activate validates the snapshot and atomically swaps the active pointer.
	// The superseded version remains in history; no penalty state is recomputed.
	Activate(ctx context.Context, cmd ActivateCommand) (*PolicyVersion, error)

	// VersionsThrough returns every version activated at or before the given
	// instant, ascending by activation time. Used to split decay integration
	// across policy-change boundaries.
	VersionsThrough(ctx context.Context, until time.Time) ([]PolicyVersion, error)
}
