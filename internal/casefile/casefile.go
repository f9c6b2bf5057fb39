// Package casefile aggregates a user's justice data into a single view for
// moderator tooling: penalty state, recent violations, and platform context
// supplied by an optional external provider.
package casefile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/points"
)

const recentViolationLimit = 10

// Context carries platform data about a user that lives outside this
// service. All fields are optional.
type Context struct {
	NovaScore      *points.Points `json:"nova_score,omitempty"`
	PrivacyProfile *string        `json:"privacy_profile,omitempty"`
}

// Provider supplies external platform context for a user. Implementations
// call out to the platform services that own reputation and privacy data.
type Provider interface {
	UserContext(ctx context.Context, userID string) (*Context, error)
}

// CaseFile is the aggregated moderation view of a single user.
type CaseFile struct {
	UserID           string                 `json:"user_id"`
	PrivacyProfile   *string                `json:"privacy_profile,omitempty"`
	State            *ledger.PenaltyState   `json:"cp_state"`
	NovaScore        *points.Points         `json:"nova_score,omitempty"`
	RecentViolations []violations.Violation `json:"recent_violations"`
}

// System defines the public contract for case file aggregation.
type System interface {
	Handler() *Handler
	Build(ctx context.Context, userID string) (*CaseFile, error)
}

type aggregator struct {
	states   ledger.System
	reports  violations.System
	provider Provider
	logger   *slog.Logger
}

// New creates a case file aggregator. Provider may be nil, in which case the
// external fields stay empty.
func New(
	states ledger.System,
	reports violations.System,
	provider Provider,
	logger *slog.Logger,
) System {
	return &aggregator{
		states:   states,
		reports:  reports,
		provider: provider,
		logger:   logger.With("system", "casefile"),
	}
}

func (a *aggregator) Handler() *Handler {
	return NewHandler(a, a.logger)
}

func (a *aggregator) Build(ctx context.Context, userID string) (*CaseFile, error) {
	if userID == "" {
		return nil, ErrInvalidUser
	}

	state, err := a.states.GetState(ctx, userID)
	if errors.Is(err, ledger.ErrNotFound) {
		// Users unknown to the ledger check out clean.
		state = &ledger.PenaltyState{
			UserID:        userID,
			Regime:        enforcement.RegimeNormal,
			LastUpdatedAt: time.Now().UTC(),
		}
	} else if err != nil {
		return nil, err
	}

	recent, err := a.reports.ListRecent(ctx, userID, recentViolationLimit)
	if err != nil {
		return nil, err
	}

	file := &CaseFile{
		UserID:           userID,
		State:            state,
		RecentViolations: recent,
	}

	if a.provider != nil {
		external, err := a.provider.UserContext(ctx, userID)
		if err != nil {
			// External context is best effort; the justice view still loads.
			a.logger.Warn("external user context unavailable", "user_id", userID, "error", err)
		} else if external != nil {
			file.NovaScore = external.NovaScore
			file.PrivacyProfile = external.PrivacyProfile
		}
	}

	return file, nil
}
