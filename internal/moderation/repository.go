package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/audit"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/points"
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

const caseColumns = `id, subject_type, user_id, reference, risk_score, reason,
	status, decision, decision_note, decided_by, created_at, decided_at`

// sourceModeration marks violations recorded by moderator rejections.
var sourceModeration = "moderation"

type repo struct {
	db         *sql.DB
	policies   policy.System
	reports    violations.System
	archive    *audit.Archiver
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a moderation repository implementing the System interface.
func New(
	db *sql.DB,
	policies policy.System,
	reports violations.System,
	archive *audit.Archiver,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		policies:   policies,
		reports:    reports,
		archive:    archive,
		logger:     logger.With("system", "moderation"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Enqueue(ctx context.Context, cmd EnqueueCommand) (*Case, error) {
	if !cmd.SubjectType.Valid() {
		return nil, errInvalid(ErrInvalidRequest, string(cmd.SubjectType))
	}
	if cmd.UserID == "" {
		return nil, errInvalid(ErrInvalidRequest, "user_id required")
	}

	q := fmt.Sprintf(`
		INSERT INTO moderation_cases(subject_type, user_id, reference, risk_score, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, caseColumns)

	var ref uuid.NullUUID
	if cmd.Reference != nil {
		ref = uuid.NullUUID{UUID: *cmd.Reference, Valid: true}
	}

	args := []any{string(cmd.SubjectType), cmd.UserID, ref, cmd.RiskScore, cmd.Reason}

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, fmt.Errorf("enqueue moderation case: %w", err)
	}

	r.logger.Info("moderation case enqueued",
		"id", c.ID,
		"subject_type", c.SubjectType,
		"user_id", c.UserID,
		"risk_score", c.RiskScore,
	)
	return &c, nil
}

func (r *repo) ListPending(
	ctx context.Context,
	subject SubjectType,
	minRisk *points.Points,
	page pagination.PageRequest,
) (*pagination.PageResult[Case], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("Status", string(StatusPending)).
		WhereEquals("SubjectType", string(subject)).
		WhereAtLeast("RiskScore", minRisk)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count pending cases: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCase)
	if err != nil {
		return nil, fmt.Errorf("query pending cases: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Case, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidRequest)
	}
	return &c, nil
}

func (r *repo) Decide(ctx context.Context, id uuid.UUID, cmd DecideCommand) (*DecisionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	riskAfter := existing.RiskScore
	var active *policy.PolicyVersion
	if cmd.Decision == DecisionReject {
		active, err = r.policies.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		riskAfter = existing.RiskScore.
			Add(active.RejectRiskIncrement).
			Clamp(0, MaxRiskScore)
	}

	var note *string
	if cmd.Note != "" {
		note = &cmd.Note
	}

	// The status guard makes the transition single-shot: a concurrent or
	// repeated submission matches zero rows and gets ErrAlreadyDecided.
	q := fmt.Sprintf(`
		UPDATE moderation_cases
		SET status = 'DECIDED',
			decision = $2,
			decision_note = $3,
			decided_by = $4,
			risk_score = $5,
			decided_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING %s`, caseColumns)

	args := []any{id, string(cmd.Decision), note, cmd.DecidedBy, riskAfter}

	decided, err := repository.QueryOne(ctx, r.db, q, args, scanCase)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadyDecided
	}
	if err != nil {
		return nil, fmt.Errorf("decide case: %w", err)
	}

	result := &DecisionResult{
		Success:        true,
		CaseID:         decided.ID,
		Decision:       cmd.Decision,
		RiskScoreAfter: riskAfter,
		Case:           decided,
	}

	if cmd.Decision == DecisionReject {
		flag, err := r.reports.Ingest(ctx, violations.IngestCommand{
			UserID:   decided.UserID,
			Category: policy.CategorySys,
			Code:     violations.ManualFlagCode,
			Severity: active.ManualFlagSeverity,
			Source:   &sourceModeration,
		})
		if err != nil {
			r.logger.Error("manual flag after rejection failed",
				"case_id", id, "user_id", decided.UserID, "error", err)
			return nil, fmt.Errorf("record manual flag: %w", err)
		}

		delta := flag.Violation.CPDelta
		result.CPDelta = &delta
		result.State = flag.State
	}

	r.archive.Archive("decisions/"+decided.ID.String()+".json", result)

	r.logger.Info("moderation case decided",
		"id", decided.ID,
		"subject_type", decided.SubjectType,
		"user_id", decided.UserID,
		"decision", cmd.Decision,
		"decided_by", cmd.DecidedBy,
		"risk_score_after", riskAfter,
	)
	return result, nil
}

func (r *repo) Appeal(ctx context.Context, cmd AppealCommand) (*Case, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	risk := cmd.RiskScore
	if risk == nil {
		active, err := r.policies.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		risk = &active.HITLThreshold
	}

	reason := cmd.Reason
	return r.Enqueue(ctx, EnqueueCommand{
		SubjectType: SubjectAppeal,
		UserID:      cmd.UserID,
		Reference:   cmd.ViolationID,
		RiskScore:   *risk,
		Reason:      &reason,
	})
}
