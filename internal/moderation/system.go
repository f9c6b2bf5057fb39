package moderation

import (
	"context"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/pkg/lifecycle"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/points"
)

// System defines the public contract for the moderation queue.
type System interface {
	Handler() *Handler

	// Enqueue creates a new pending case.
	Enqueue(ctx context.Context, cmd EnqueueCommand) (*Case, error)

	// ListPending returns undecided cases of the given subject type, riskiest
	// first. A non-nil minRisk excludes cases below it.
	ListPending(
		ctx context.Context,
		subject SubjectType,
		minRisk *points.Points,
		page pagination.PageRequest,
	) (*pagination.PageResult[Case], error)

	Find(ctx context.Context, id uuid.UUID) (*Case, error)

	// Decide closes a pending case exactly once. Concurrent or repeated
	// submissions for the same case fail with ErrAlreadyDecided; side effects
	// are applied only by the submission that wins.
	Decide(ctx context.Context, id uuid.UUID, cmd DecideCommand) (*DecisionResult, error)

	// Appeal opens an APPEAL case for a user.
	Appeal(ctx context.Context, cmd AppealCommand) (*Case, error)

	// DispatchOutbox drains pending outbox entries into cases, returning how
	// many were dispatched. Failed entries are retried on the next pass.
	DispatchOutbox(ctx context.Context) (int, error)

	// StartDispatcher runs the outbox polling loop until shutdown.
	StartDispatcher(lc *lifecycle.Coordinator)
}
