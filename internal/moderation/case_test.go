package moderation_test

import (
	"errors"
	"testing"

	"github.com/aurora-platform/justice/internal/moderation"
	"github.com/aurora-platform/justice/pkg/points"
)

func ptr[T any](v T) *T {
	return &v
}

func TestDecideCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     moderation.DecideCommand
		wantErr error
	}{
		{
			name:    "approve",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionApprove, DecidedBy: "mod-1"},
			wantErr: nil,
		},
		{
			name:    "approve without note",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionApprove, DecidedBy: "mod-1"},
			wantErr: nil,
		},
		{
			name:    "reject with note",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionReject, Note: "confirmed abuse", DecidedBy: "mod-1"},
			wantErr: nil,
		},
		{
			name:    "reject without note",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionReject, DecidedBy: "mod-1"},
			wantErr: moderation.ErrMissingJustification,
		},
		{
			name:    "reject with blank note",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionReject, Note: "   ", DecidedBy: "mod-1"},
			wantErr: moderation.ErrMissingJustification,
		},
		{
			name:    "unknown decision",
			cmd:     moderation.DecideCommand{Decision: moderation.Decision("ESCALATE"), DecidedBy: "mod-1"},
			wantErr: moderation.ErrInvalidDecision,
		},
		{
			name:    "missing moderator",
			cmd:     moderation.DecideCommand{Decision: moderation.DecisionApprove},
			wantErr: moderation.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppealCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     moderation.AppealCommand
		wantErr bool
	}{
		{
			name: "valid",
			cmd:  moderation.AppealCommand{UserID: "user-1", Reason: "the flag was automated and wrong"},
		},
		{
			name: "valid with risk",
			cmd: moderation.AppealCommand{
				UserID:    "user-1",
				Reason:    "wrong target",
				RiskScore: ptr(points.MustParse("3")),
			},
		},
		{
			name:    "missing user",
			cmd:     moderation.AppealCommand{Reason: "why"},
			wantErr: true,
		},
		{
			name:    "missing reason",
			cmd:     moderation.AppealCommand{UserID: "user-1"},
			wantErr: true,
		},
		{
			name: "risk out of range",
			cmd: moderation.AppealCommand{
				UserID:    "user-1",
				Reason:    "why",
				RiskScore: ptr(points.MustParse("10.5")),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr && !errors.Is(err, moderation.ErrInvalidRequest) {
				t.Errorf("Validate() = %v, want ErrInvalidRequest", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{moderation.ErrNotFound, 404},
		{moderation.ErrAlreadyDecided, 409},
		{moderation.ErrInvalidDecision, 400},
		{moderation.ErrMissingJustification, 400},
		{moderation.ErrInvalidRequest, 400},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := moderation.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{moderation.ErrAlreadyDecided, "ALREADY_DECIDED"},
		{moderation.ErrMissingJustification, "MISSING_JUSTIFICATION"},
		{moderation.ErrNotFound, "CASE_NOT_FOUND"},
	}

	for _, tt := range tests {
		if got := moderation.ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
