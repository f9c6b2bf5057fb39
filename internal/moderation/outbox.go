package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aurora-platform/justice/pkg/lifecycle"
	"github.com/aurora-platform/justice/pkg/points"
	"github.com/aurora-platform/justice/pkg/repository"
)

const (
	outboxPollInterval = 5 * time.Second
	outboxBatchSize    = 25
	outboxWorkers      = 4
)

// outboxEntry is a pending handoff written by violation ingestion.
type outboxEntry struct {
	ID        int64
	Subject   SubjectType
	UserID    string
	Reference uuid.UUID
	RiskScore points.Points
}

func scanOutboxEntry(s repository.Scanner) (outboxEntry, error) {
	var e outboxEntry
	err := s.Scan(&e.ID, &e.Subject, &e.UserID, &e.Reference, &e.RiskScore)
	return e, err
}

func (r *repo) DispatchOutbox(ctx context.Context) (int, error) {
	q := `
		SELECT id, subject_type, user_id, reference, risk_score
		FROM moderation_outbox
		WHERE dispatched_at IS NULL
		ORDER BY created_at
		LIMIT $1`

	entries, err := repository.QueryMany(ctx, r.db, q, []any{outboxBatchSize}, scanOutboxEntry)
	if err != nil {
		return 0, fmt.Errorf("query outbox: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(outboxWorkers)

	var dispatched atomic.Int64
	for _, e := range entries {
		g.Go(func() error {
			if err := r.dispatchEntry(gctx, e); err != nil {
				r.logger.Error("outbox dispatch failed", "entry_id", e.ID, "error", err)
				if _, execErr := r.db.ExecContext(gctx, `
					UPDATE moderation_outbox SET attempts = attempts + 1 WHERE id = $1`,
					e.ID,
				); execErr != nil {
					r.logger.Error("outbox attempt bump failed", "entry_id", e.ID, "error", execErr)
				}
				return nil
			}
			dispatched.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(dispatched.Load()), err
	}
	return int(dispatched.Load()), nil
}

// dispatchEntry claims one outbox entry and opens its case in a single
// transaction. A zero-row claim means another dispatcher got there first.
func (r *repo) dispatchEntry(ctx context.Context, e outboxEntry) error {
	insertQ := fmt.Sprintf(`
		INSERT INTO moderation_cases(subject_type, user_id, reference, risk_score)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, caseColumns)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Case, error) {
		if err := repository.ExecExpectOne(ctx, tx, `
			UPDATE moderation_outbox
			SET dispatched_at = NOW()
			WHERE id = $1 AND dispatched_at IS NULL`,
			e.ID,
		); err != nil {
			return Case{}, err
		}

		args := []any{string(e.Subject), e.UserID, e.Reference, e.RiskScore}
		return repository.QueryOne(ctx, tx, insertQ, args, scanCase)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info("moderation case opened from outbox",
		"case_id", c.ID,
		"entry_id", e.ID,
		"user_id", c.UserID,
		"risk_score", c.RiskScore,
	)
	return nil
}

func (r *repo) StartDispatcher(lc *lifecycle.Coordinator) {
	go func() {
		lc.WaitForStartup()

		ticker := time.NewTicker(outboxPollInterval)
		defer ticker.Stop()

		r.logger.Info("outbox dispatcher started", "poll_interval", outboxPollInterval)

		for {
			select {
			case <-lc.Context().Done():
				r.logger.Info("outbox dispatcher stopped")
				return
			case <-ticker.C:
				n, err := r.DispatchOutbox(lc.Context())
				if err != nil {
					r.logger.Error("outbox dispatch pass failed", "error", err)
					continue
				}
				if n > 0 {
					r.logger.Info("outbox entries dispatched", "count", n)
				}
			}
		}
	}()
}
