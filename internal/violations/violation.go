// Package violations implements violation ingestion: validating incoming
// reports against the active policy, computing their penalty contribution,
// recording them through the ledger, and handing high-risk reports to the
// moderation outbox. Violations are append-only facts; once recorded they are
// never modified or deleted.
package violations

import (
	"time"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/points"
)

// ManualFlagCode is the taxonomy code of violations recorded when a
// moderator rejects a case.
const ManualFlagCode = "MANUAL_FLAG"

// Violation is an immutable record of a single infraction. CPDelta and
// PolicyVersion capture the policy arithmetic in effect at ingestion so the
// contribution can be re-audited after later policy changes.
type Violation struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	Category      policy.Category `json:"category"`
	Code          string          `json:"code"`
	Severity      int             `json:"severity"`
	CPDelta       points.Points   `json:"cp_delta"`
	PolicyVersion string          `json:"policy_version"`
	RiskScore     *points.Points  `json:"risk_score,omitempty"`
	Source        *string         `json:"source,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IngestCommand carries the data needed to record a new violation.
// RiskScore is the caller-supplied abuse estimate on [0,10]; when present and
// at or above the policy HITL threshold, a moderation case is enqueued.
type IngestCommand struct {
	UserID    string          `json:"user_id"`
	Category  policy.Category `json:"category"`
	Code      string          `json:"code"`
	Severity  int             `json:"severity"`
	RiskScore *points.Points  `json:"risk_score,omitempty"`
	Source    *string         `json:"source,omitempty"`
}

// Validate checks the command against policy-known categories and bounds.
func (c *IngestCommand) Validate() error {
	if c.UserID == "" {
		return errInvalid(ErrInvalidRequest, "user_id required")
	}
	if !c.Category.Valid() {
		return errInvalid(ErrInvalidCategory, string(c.Category))
	}
	if c.Code == "" {
		return errInvalid(ErrInvalidRequest, "code required")
	}
	if c.Severity < policy.MinSeverity || c.Severity > policy.MaxSeverity {
		return errInvalid(ErrInvalidSeverity, "severity must be within [1,5]")
	}
	if c.RiskScore != nil {
		if *c.RiskScore < 0 || *c.RiskScore > points.FromUnits(10) {
			return errInvalid(ErrInvalidRequest, "risk_score must be within [0,10]")
		}
	}
	return nil
}

// IngestResult is the recorded violation with the resulting penalty state
// and whether a moderation case was handed off. The violation fields sit at
// the top level of the serialized form; state and handoff ride alongside.
type IngestResult struct {
	Violation
	State    *ledger.PenaltyState `json:"cp_state"`
	Enqueued bool                 `json:"moderation_enqueued"`
}
