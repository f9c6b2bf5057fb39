package ledger

import (
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "penalty_states", "s").
	Project("user_id", "UserID").
	Project("cp_value", "CPValue").
	Project("regime", "Regime").
	Project("last_updated_at", "LastUpdatedAt")

func scanPenaltyState(s repository.Scanner) (PenaltyState, error) {
	var st PenaltyState

	err := s.Scan(
		&st.UserID,
		&st.CPValue,
		&st.Regime,
		&st.LastUpdatedAt,
	)

	return st, err
}
