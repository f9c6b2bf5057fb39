package violations

import (
	"context"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/pkg/pagination"
)

// System defines the public contract for violation ingestion and lookup.
type System interface {
	Handler() *Handler

	// Ingest validates the command against the active policy, computes the
	// penalty contribution, records the violation and updated penalty state
	// atomically, and hands high-risk violations to the moderation outbox
	// within the same transaction. The ledger write never depends on the
	// moderation queue being drained.
	Ingest(ctx context.Context, cmd IngestCommand) (*IngestResult, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Violation], error)

	Find(ctx context.Context, id uuid.UUID) (*Violation, error)

	// ListRecent returns the user's most recent violations, newest first.
	ListRecent(ctx context.Context, userID string, limit int) ([]Violation, error)
}
