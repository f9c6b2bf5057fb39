package enforcement_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/points"
)

func testPolicy() *policy.PolicyVersion {
	return &policy.PolicyVersion{
		Version:             "1.0",
		ThresholdSoftFlag:   points.MustParse("20"),
		ThresholdProbation:  points.MustParse("40"),
		ThresholdRestricted: points.MustParse("60"),
		ThresholdLockdown:   points.MustParse("80"),
	}
}

func TestClassify(t *testing.T) {
	p := testPolicy()

	tests := []struct {
		name string
		cp   points.Points
		want enforcement.Regime
	}{
		{"zero", points.Zero, enforcement.RegimeNormal},
		{"below soft flag", points.MustParse("19.999"), enforcement.RegimeNormal},
		{"at soft flag", points.MustParse("20"), enforcement.RegimeSoftFlag},
		{"between tiers", points.MustParse("39.999"), enforcement.RegimeSoftFlag},
		{"at probation", points.MustParse("40"), enforcement.RegimeProbation},
		{"at restricted", points.MustParse("60"), enforcement.RegimeRestricted},
		{"at lockdown", points.MustParse("80"), enforcement.RegimeLockdown},
		{"above lockdown", points.MustParse("500"), enforcement.RegimeLockdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := enforcement.Classify(tt.cp, p); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.cp, got, tt.want)
			}
		})
	}
}

func TestMatrixTotality(t *testing.T) {
	m := enforcement.DefaultMatrix()

	// Every (regime, action) pair must produce a definite answer; exercising
	// the full cross product also pins the block sets.
	blocked := map[enforcement.Regime][]enforcement.Action{
		enforcement.RegimeProbation: {
			enforcement.ActionCreateListing,
			enforcement.ActionAcceptQuest,
		},
		enforcement.RegimeRestricted: {
			enforcement.ActionCreateListing,
			enforcement.ActionAcceptQuest,
			enforcement.ActionWithdraw,
			enforcement.ActionTopup,
		},
		enforcement.RegimeLockdown: {
			enforcement.ActionSendMessage,
			enforcement.ActionStartCall,
			enforcement.ActionWithdraw,
			enforcement.ActionTopup,
			enforcement.ActionCreateListing,
			enforcement.ActionAcceptQuest,
		},
	}

	isBlocked := func(r enforcement.Regime, a enforcement.Action) bool {
		for _, b := range blocked[r] {
			if b == a {
				return true
			}
		}
		return false
	}

	for _, regime := range enforcement.Regimes {
		for _, action := range enforcement.Actions {
			got := m.IsAllowed(regime, action)
			want := !isBlocked(regime, action)
			if got != want {
				t.Errorf("IsAllowed(%s, %s) = %v, want %v", regime, action, got, want)
			}
		}
	}
}

func TestMatrixAlwaysAvailableActions(t *testing.T) {
	// Even a matrix configured to block them must let these through.
	m := enforcement.NewMatrix(map[enforcement.Regime][]enforcement.Action{
		enforcement.RegimeLockdown: {
			enforcement.ActionViewOwnData,
			enforcement.ActionSubmitAppeal,
		},
	})

	if !m.IsAllowed(enforcement.RegimeLockdown, enforcement.ActionViewOwnData) {
		t.Error("VIEW_OWN_DATA blocked under LOCKDOWN")
	}
	if !m.IsAllowed(enforcement.RegimeLockdown, enforcement.ActionSubmitAppeal) {
		t.Error("SUBMIT_APPEAL blocked under LOCKDOWN")
	}
}

func TestMatrixUnknownRegimeAllows(t *testing.T) {
	m := enforcement.NewMatrix(nil)
	if !m.IsAllowed(enforcement.Regime("UNKNOWN"), enforcement.ActionSendMessage) {
		t.Error("unknown regime should default to allow")
	}
}

func TestCheck(t *testing.T) {
	states := enforcement.StateFunc(
		func(ctx context.Context, userID string) (points.Points, enforcement.Regime, error) {
			switch userID {
			case "locked":
				return points.MustParse("85"), enforcement.RegimeLockdown, nil
			default:
				return points.Zero, enforcement.RegimeNormal, nil
			}
		},
	)

	sys := enforcement.New(
		states,
		enforcement.DefaultMatrix(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	tests := []struct {
		name        string
		userID      string
		action      enforcement.Action
		wantAllowed bool
		wantRegime  enforcement.Regime
	}{
		{"clean user sends message", "clean", enforcement.ActionSendMessage, true, enforcement.RegimeNormal},
		{"locked user sends message", "locked", enforcement.ActionSendMessage, false, enforcement.RegimeLockdown},
		{"locked user views own data", "locked", enforcement.ActionViewOwnData, true, enforcement.RegimeLockdown},
		{"locked user submits appeal", "locked", enforcement.ActionSubmitAppeal, true, enforcement.RegimeLockdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := sys.Check(context.Background(), tt.userID, tt.action)
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if decision.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", decision.Allowed, tt.wantAllowed)
			}
			if decision.Regime != tt.wantRegime {
				t.Errorf("Regime = %s, want %s", decision.Regime, tt.wantRegime)
			}
		})
	}
}
