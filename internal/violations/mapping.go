package violations

import (
	"net/url"

	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "violations", "v").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("category", "Category").
	Project("code", "Code").
	Project("severity", "Severity").
	Project("cp_delta", "CPDelta").
	Project("policy_version", "PolicyVersion").
	Project("risk_score", "RiskScore").
	Project("source", "Source").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for violation queries.
// Nil or empty fields are ignored. Multiple categories match any of them.
type Filters struct {
	UserID     *string           `json:"user_id,omitempty"`
	Categories []policy.Category `json:"categories,omitempty"`
	Code       *string           `json:"code,omitempty"`
	Source     *string           `json:"source,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	categories := make([]any, len(f.Categories))
	for i, c := range f.Categories {
		categories[i] = string(c)
	}
	return b.
		WhereEquals("UserID", f.UserID).
		WhereIn("Category", categories).
		WhereEquals("Code", f.Code).
		WhereEquals("Source", f.Source)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// The category parameter may repeat to match any of several categories.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		f.UserID = &u
	}

	for _, c := range values["category"] {
		if c != "" {
			f.Categories = append(f.Categories, policy.Category(c))
		}
	}

	if c := values.Get("code"); c != "" {
		f.Code = &c
	}

	if s := values.Get("source"); s != "" {
		f.Source = &s
	}

	return f
}

func scanViolation(s repository.Scanner) (Violation, error) {
	var v Violation

	err := s.Scan(
		&v.ID,
		&v.UserID,
		&v.Category,
		&v.Code,
		&v.Severity,
		&v.CPDelta,
		&v.PolicyVersion,
		&v.RiskScore,
		&v.Source,
		&v.CreatedAt,
	)

	return v, err
}
