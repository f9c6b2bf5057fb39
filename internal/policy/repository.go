package policy

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurora-platform/justice/internal/audit"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

const policyColumns = `version, decay_per_day, base_eko, base_com, base_sys, base_trust,
		threshold_soft_flag, threshold_probation, threshold_restricted, threshold_lockdown,
		severity_step, hitl_threshold, reject_risk_increment, manual_flag_severity,
		onchain_block, onchain_tx, active, activated_at`

type repo struct {
	db         *sql.DB
	archive    *audit.Archiver
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a policy repository implementing the System interface.
func New(
	db *sql.DB,
	archive *audit.Archiver,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		archive:    archive,
		logger:     logger.With("system", "policy"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) GetActive(ctx context.Context) (*PolicyVersion, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Active", true).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPolicyVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNoPolicyConfigured, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) GetVersion(ctx context.Context, version string) (*PolicyVersion, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Version", version)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPolicyVersion)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[PolicyVersion], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count policy versions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPolicyVersion)
	if err != nil {
		return nil, fmt.Errorf("query policy versions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Activate(ctx context.Context, cmd ActivateCommand) (*PolicyVersion, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	insertQ := fmt.Sprintf(`
		INSERT INTO policy_versions(%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, TRUE, NOW())
		RETURNING %s`, policyColumns, policyColumns)

	insertArgs := []any{
		cmd.Version,
		cmd.DecayPerDay,
		cmd.BaseEko,
		cmd.BaseCom,
		cmd.BaseSys,
		cmd.BaseTrust,
		cmd.ThresholdSoftFlag,
		cmd.ThresholdProbation,
		cmd.ThresholdRestricted,
		cmd.ThresholdLockdown,
		cmd.SeverityStep,
		cmd.HITLThreshold,
		cmd.RejectRiskIncrement,
		cmd.ManualFlagSeverity,
		cmd.OnchainBlock,
		cmd.OnchainTx,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (PolicyVersion, error) {
		if _, err := tx.ExecContext(ctx,
			"UPDATE policy_versions SET active = FALSE WHERE active",
		); err != nil {
			return PolicyVersion{}, fmt.Errorf("retire active policy: %w", err)
		}

		pv, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanPolicyVersion)
		if err != nil {
			return PolicyVersion{}, fmt.Errorf("insert policy version: %w", err)
		}

		return pv, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.archive.Archive("policies/"+p.Version+".json", p)

	r.logger.Info("policy activated",
		"version", p.Version,
		"decay_per_day", p.DecayPerDay,
		"threshold_lockdown", p.ThresholdLockdown,
	)
	return &p, nil
}

func (r *repo) VersionsThrough(ctx context.Context, until time.Time) ([]PolicyVersion, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM policy_versions
		WHERE activated_at <= $1
		ORDER BY activated_at ASC`, policyColumns)

	versions, err := repository.QueryMany(ctx, r.db, q, []any{until}, scanPolicyVersion)
	if err != nil {
		return nil, fmt.Errorf("query policy history: %w", err)
	}
	return versions, nil
}
