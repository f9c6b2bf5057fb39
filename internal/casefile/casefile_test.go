package casefile_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/casefile"
	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/points"
)

type mockLedger struct {
	getStateFn func(ctx context.Context, userID string) (*ledger.PenaltyState, error)
}

func (m *mockLedger) Handler() *ledger.Handler { return nil }

func (m *mockLedger) GetState(ctx context.Context, userID string) (*ledger.PenaltyState, error) {
	return m.getStateFn(ctx, userID)
}

func (m *mockLedger) RecordContribution(ctx context.Context, tx *sql.Tx, userID string, delta points.Points) (*ledger.PenaltyState, error) {
	return nil, errors.New("not implemented")
}

type mockViolations struct {
	listRecentFn func(ctx context.Context, userID string, limit int) ([]violations.Violation, error)
}

func (m *mockViolations) Handler() *violations.Handler { return nil }

func (m *mockViolations) Ingest(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockViolations) List(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error) {
	return nil, errors.New("not implemented")
}

func (m *mockViolations) Find(ctx context.Context, id uuid.UUID) (*violations.Violation, error) {
	return nil, errors.New("not implemented")
}

func (m *mockViolations) ListRecent(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
	return m.listRecentFn(ctx, userID, limit)
}

type staticProvider struct {
	ctx *casefile.Context
	err error
}

func (p *staticProvider) UserContext(ctx context.Context, userID string) (*casefile.Context, error) {
	return p.ctx, p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildKnownUser(t *testing.T) {
	state := &ledger.PenaltyState{
		UserID:  "user-1",
		CPValue: points.MustParse("25"),
		Regime:  enforcement.RegimeSoftFlag,
	}
	states := &mockLedger{
		getStateFn: func(ctx context.Context, userID string) (*ledger.PenaltyState, error) {
			return state, nil
		},
	}
	reports := &mockViolations{
		listRecentFn: func(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
			return []violations.Violation{{UserID: userID, Code: "FAKE_DELIVERY"}}, nil
		},
	}

	sys := casefile.New(states, reports, nil, testLogger())
	file, err := sys.Build(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if file.State != state {
		t.Errorf("State = %+v, want ledger state", file.State)
	}
	if len(file.RecentViolations) != 1 {
		t.Errorf("RecentViolations = %d entries, want 1", len(file.RecentViolations))
	}
	if file.NovaScore != nil || file.PrivacyProfile != nil {
		t.Error("external fields should be empty without a provider")
	}
}

func TestBuildUnknownUserChecksOutClean(t *testing.T) {
	states := &mockLedger{
		getStateFn: func(ctx context.Context, userID string) (*ledger.PenaltyState, error) {
			return nil, ledger.ErrNotFound
		},
	}
	reports := &mockViolations{
		listRecentFn: func(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
			return nil, nil
		},
	}

	sys := casefile.New(states, reports, nil, testLogger())
	file, err := sys.Build(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if file.State.CPValue != points.Zero {
		t.Errorf("CPValue = %s, want 0", file.State.CPValue)
	}
	if file.State.Regime != enforcement.RegimeNormal {
		t.Errorf("Regime = %s, want NORMAL", file.State.Regime)
	}
}

func TestBuildProviderContext(t *testing.T) {
	nova := points.MustParse("4.2")
	profile := "standard"

	states := &mockLedger{
		getStateFn: func(ctx context.Context, userID string) (*ledger.PenaltyState, error) {
			return &ledger.PenaltyState{UserID: userID, Regime: enforcement.RegimeNormal}, nil
		},
	}
	reports := &mockViolations{
		listRecentFn: func(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
			return nil, nil
		},
	}
	provider := &staticProvider{
		ctx: &casefile.Context{NovaScore: &nova, PrivacyProfile: &profile},
	}

	sys := casefile.New(states, reports, provider, testLogger())
	file, err := sys.Build(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if file.NovaScore == nil || *file.NovaScore != nova {
		t.Errorf("NovaScore = %v, want %s", file.NovaScore, nova)
	}
	if file.PrivacyProfile == nil || *file.PrivacyProfile != profile {
		t.Errorf("PrivacyProfile = %v, want %s", file.PrivacyProfile, profile)
	}
}

func TestBuildProviderFailureIsNonFatal(t *testing.T) {
	states := &mockLedger{
		getStateFn: func(ctx context.Context, userID string) (*ledger.PenaltyState, error) {
			return &ledger.PenaltyState{UserID: userID, Regime: enforcement.RegimeNormal}, nil
		},
	}
	reports := &mockViolations{
		listRecentFn: func(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
			return nil, nil
		},
	}
	provider := &staticProvider{err: errors.New("upstream down")}

	sys := casefile.New(states, reports, provider, testLogger())
	file, err := sys.Build(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if file.NovaScore != nil {
		t.Error("NovaScore should be empty when the provider fails")
	}
}

func TestBuildEmptyUser(t *testing.T) {
	sys := casefile.New(&mockLedger{}, &mockViolations{}, nil, testLogger())
	if _, err := sys.Build(context.Background(), ""); !errors.Is(err, casefile.ErrInvalidUser) {
		t.Errorf("Build(\"\") = %v, want ErrInvalidUser", err)
	}
}
