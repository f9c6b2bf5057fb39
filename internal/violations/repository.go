package violations

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

type repo struct {
	db         *sql.DB
	policies   policy.System
	states     ledger.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a violations repository implementing the System interface.
func New(
	db *sql.DB,
	policies policy.System,
	states ledger.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		policies:   policies,
		states:     states,
		logger:     logger.With("system", "violations"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Ingest(ctx context.Context, cmd IngestCommand) (*IngestResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	active, err := r.policies.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	delta := active.CPDelta(cmd.Category, cmd.Severity)

	insertQ := `
		INSERT INTO violations(
			user_id, category, code, severity, cp_delta,
			policy_version, risk_score, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, category, code, severity, cp_delta,
				  policy_version, risk_score, source, created_at`

	insertArgs := []any{
		cmd.UserID,
		string(cmd.Category),
		cmd.Code,
		cmd.Severity,
		delta,
		active.Version,
		cmd.RiskScore,
		cmd.Source,
	}

	enqueue := cmd.RiskScore != nil && *cmd.RiskScore >= active.HITLThreshold

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (IngestResult, error) {
		state, err := r.states.RecordContribution(ctx, tx, cmd.UserID, delta)
		if err != nil {
			return IngestResult{}, err
		}

		v, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanViolation)
		if err != nil {
			return IngestResult{}, fmt.Errorf("insert violation: %w", err)
		}

		if enqueue {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO moderation_outbox(subject_type, user_id, reference, risk_score)
				VALUES ('VIOLATION', $1, $2, $3)`,
				cmd.UserID, v.ID, cmd.RiskScore,
			); err != nil {
				return IngestResult{}, fmt.Errorf("insert moderation outbox entry: %w", err)
			}
		}

		return IngestResult{Violation: v, State: state, Enqueued: enqueue}, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidRequest)
	}

	r.logger.Info("violation recorded",
		"id", result.Violation.ID,
		"user_id", cmd.UserID,
		"category", cmd.Category,
		"code", cmd.Code,
		"cp_delta", delta,
		"cp_value", result.State.CPValue,
		"regime", result.State.Regime,
		"moderation_enqueued", enqueue,
	)
	return &result, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Violation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Code", "UserID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count violations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanViolation)
	if err != nil {
		return nil, fmt.Errorf("query violations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Violation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanViolation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidRequest)
	}
	return &v, nil
}

func (r *repo) ListRecent(ctx context.Context, userID string, limit int) ([]Violation, error) {
	if limit < 1 {
		limit = 10
	}

	pageSQL, pageArgs := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		BuildPage(1, limit)

	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanViolation)
	if err != nil {
		return nil, fmt.Errorf("query recent violations: %w", err)
	}
	return items, nil
}
