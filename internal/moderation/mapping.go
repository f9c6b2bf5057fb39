package moderation

import (
	"github.com/google/uuid"

	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "moderation_cases", "m").
	Project("id", "ID").
	Project("subject_type", "SubjectType").
	Project("user_id", "UserID").
	Project("reference", "Reference").
	Project("risk_score", "RiskScore").
	Project("reason", "Reason").
	Project("status", "Status").
	Project("decision", "Decision").
	Project("decision_note", "DecisionNote").
	Project("decided_by", "DecidedBy").
	Project("created_at", "CreatedAt").
	Project("decided_at", "DecidedAt")

// Pending queues surface the riskiest cases first; ties break oldest first.
var defaultSort = []query.SortField{
	{Field: "RiskScore", Descending: true},
	{Field: "CreatedAt", Descending: false},
}

func scanCase(s repository.Scanner) (Case, error) {
	var (
		c   Case
		ref uuid.NullUUID
	)

	err := s.Scan(
		&c.ID,
		&c.SubjectType,
		&c.UserID,
		&ref,
		&c.RiskScore,
		&c.Reason,
		&c.Status,
		&c.Decision,
		&c.DecisionNote,
		&c.DecidedBy,
		&c.CreatedAt,
		&c.DecidedAt,
	)

	if ref.Valid {
		c.Reference = &ref.UUID
	}

	return c, err
}
