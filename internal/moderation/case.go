// Package moderation implements the human-in-the-loop review queue. Cases
// arrive from the violation outbox or from user appeals, moderators decide
// them exactly once, and rejections feed a manual-flag violation back through
// ingestion so penalty state and regime re-evaluate automatically.
package moderation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/pkg/points"
)

// SubjectType identifies what kind of record a case reviews.
type SubjectType string

const (
	SubjectViolation SubjectType = "VIOLATION"
	SubjectAppeal    SubjectType = "APPEAL"
)

// Valid reports whether the subject type is a known value.
func (s SubjectType) Valid() bool {
	return s == SubjectViolation || s == SubjectAppeal
}

// Status is the lifecycle state of a case. A case moves from PENDING to
// DECIDED exactly once and never back.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusDecided Status = "DECIDED"
)

// Decision is a moderator's verdict on a case.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// MaxRiskScore bounds risk scores on cases and commands.
var MaxRiskScore = points.FromUnits(10)

// Case is a single review item in the moderation queue. Reference points at
// the violation under review when present; appeals may omit it.
type Case struct {
	ID           uuid.UUID     `json:"id"`
	SubjectType  SubjectType   `json:"subject_type"`
	UserID       string        `json:"user_id"`
	Reference    *uuid.UUID    `json:"reference,omitempty"`
	RiskScore    points.Points `json:"risk_score"`
	Reason       *string       `json:"reason,omitempty"`
	Status       Status        `json:"status"`
	Decision     *Decision     `json:"decision,omitempty"`
	DecisionNote *string       `json:"decision_note,omitempty"`
	DecidedBy    *string       `json:"decided_by,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
}

// DecideCommand carries a moderator's verdict. Rejections require a
// justification note.
type DecideCommand struct {
	Decision  Decision `json:"decision"`
	Note      string   `json:"note,omitempty"`
	DecidedBy string   `json:"decided_by"`
}

// Validate checks the verdict, the moderator identity, and the rejection
// justification requirement.
func (c *DecideCommand) Validate() error {
	switch c.Decision {
	case DecisionApprove, DecisionReject:
	default:
		return errInvalid(ErrInvalidDecision, string(c.Decision))
	}

	if c.DecidedBy == "" {
		return errInvalid(ErrInvalidRequest, "decided_by required")
	}

	if c.Decision == DecisionReject && strings.TrimSpace(c.Note) == "" {
		return ErrMissingJustification
	}

	return nil
}

// DecisionResult reports the decision outcome and its side effects, with the
// case id and decision at the top level and the full case attached. CPDelta
// and State are set only for rejections, where a manual-flag violation was
// recorded against the user.
type DecisionResult struct {
	Success        bool                 `json:"success"`
	CaseID         uuid.UUID            `json:"case_id"`
	Decision       Decision             `json:"decision"`
	RiskScoreAfter points.Points        `json:"risk_score_after"`
	CPDelta        *points.Points       `json:"cp_delta,omitempty"`
	State          *ledger.PenaltyState `json:"cp_state,omitempty"`
	Case           Case                 `json:"case"`
}

// AppealCommand opens an APPEAL case on behalf of a user. ViolationID is
// optional; appeals against a regime rather than a single violation omit it.
// When RiskScore is absent the active policy's HITL threshold is used so the
// appeal surfaces in the pending queue.
type AppealCommand struct {
	UserID      string         `json:"user_id"`
	ViolationID *uuid.UUID     `json:"violation_id,omitempty"`
	Reason      string         `json:"reason"`
	RiskScore   *points.Points `json:"risk_score,omitempty"`
}

// Validate checks required fields and risk score bounds.
func (c *AppealCommand) Validate() error {
	if c.UserID == "" {
		return errInvalid(ErrInvalidRequest, "user_id required")
	}
	if strings.TrimSpace(c.Reason) == "" {
		return errInvalid(ErrInvalidRequest, "reason required")
	}
	if c.RiskScore != nil {
		if *c.RiskScore < 0 || *c.RiskScore > MaxRiskScore {
			return errInvalid(ErrInvalidRequest, "risk_score must be within [0,10]")
		}
	}
	return nil
}

// EnqueueCommand creates a new pending case.
type EnqueueCommand struct {
	SubjectType SubjectType
	UserID      string
	Reference   *uuid.UUID
	RiskScore   points.Points
	Reason      *string
}
