package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/points"
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

type repo struct {
	db       *sql.DB
	policies policy.System
	logger   *slog.Logger
}

// New creates a ledger repository implementing the System interface.
func New(db *sql.DB, policies policy.System, logger *slog.Logger) System {
	return &repo{
		db:       db,
		policies: policies,
		logger:   logger.With("system", "ledger"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) GetState(ctx context.Context, userID string) (*PenaltyState, error) {
	q, args := query.NewBuilder(projection).BuildSingle("UserID", userID)

	stored, err := repository.QueryOne(ctx, r.db, q, args, scanPenaltyState)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	now := time.Now().UTC()
	versions, err := r.policies.VersionsThrough(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, policy.ErrNoPolicyConfigured
	}

	active := versions[len(versions)-1]
	decayed := Decay(stored.CPValue, stored.LastUpdatedAt, now, versions)

	return &PenaltyState{
		UserID:        stored.UserID,
		CPValue:       decayed,
		Regime:        enforcement.Classify(decayed, &active),
		LastUpdatedAt: stored.LastUpdatedAt,
	}, nil
}

func (r *repo) RecordContribution(
	ctx context.Context,
	tx *sql.Tx,
	userID string,
	delta points.Points,
) (*PenaltyState, error) {
	now := time.Now().UTC()

	versions, err := r.policies.VersionsThrough(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, policy.ErrNoPolicyConfigured
	}
	active := versions[len(versions)-1]

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO penalty_states(user_id, cp_value, regime, last_updated_at)
		VALUES ($1, 0, 'NORMAL', $2)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, now,
	); err != nil {
		return nil, fmt.Errorf("ensure penalty state: %w", err)
	}

	lockQ := `
		SELECT s.user_id, s.cp_value, s.regime, s.last_updated_at
		FROM public.penalty_states s
		WHERE s.user_id = $1
		FOR UPDATE`

	stored, err := repository.QueryOne(ctx, tx, lockQ, []any{userID}, scanPenaltyState)
	if err != nil {
		return nil, fmt.Errorf("lock penalty state: %w", err)
	}

	decayed := Decay(stored.CPValue, stored.LastUpdatedAt, now, versions)
	updated := decayed.Add(delta)
	regime := enforcement.Classify(updated, &active)

	if err := repository.ExecExpectOne(ctx, tx, `
		UPDATE penalty_states
		SET cp_value = $2, regime = $3, last_updated_at = $4
		WHERE user_id = $1`,
		userID, updated, string(regime), now,
	); err != nil {
		return nil, fmt.Errorf("update penalty state: %w", err)
	}

	if regime != stored.Regime {
		r.logger.Info("regime changed",
			"user_id", userID,
			"from", stored.Regime,
			"to", regime,
			"cp_value", updated,
		)
	}

	return &PenaltyState{
		UserID:        userID,
		CPValue:       updated,
		Regime:        regime,
		LastUpdatedAt: now,
	}, nil
}
