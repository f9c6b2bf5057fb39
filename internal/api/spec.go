package api

import (
	"github.com/aurora-platform/justice/internal/config"
	"github.com/aurora-platform/justice/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the justice API.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	addSchemas(spec)
	addPolicyPaths(spec)
	addLedgerPaths(spec)
	addViolationPaths(spec)
	addModerationPaths(spec)
	addEnforcementPaths(spec)

	return spec
}

func addSchemas(spec *openapi.Spec) {
	s := spec.Components.Schemas

	s["PolicyVersion"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"version":               {Type: "string", Example: "1.0"},
			"decay_per_day":         {Type: "number"},
			"base_eko":              {Type: "number"},
			"base_com":              {Type: "number"},
			"base_sys":              {Type: "number"},
			"base_trust":            {Type: "number"},
			"threshold_soft_flag":   {Type: "number"},
			"threshold_probation":   {Type: "number"},
			"threshold_restricted":  {Type: "number"},
			"threshold_lockdown":    {Type: "number"},
			"severity_step":         {Type: "number"},
			"hitl_threshold":        {Type: "number"},
			"reject_risk_increment": {Type: "number"},
			"manual_flag_severity":  {Type: "integer"},
			"onchain_block":         {Type: "integer"},
			"onchain_tx":            {Type: "string"},
			"active":                {Type: "boolean"},
			"synced_at":             {Type: "string", Format: "date-time"},
		},
	}

	s["PenaltyState"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"user_id":         {Type: "string"},
			"cp_value":        {Type: "number"},
			"regime":          {Type: "string", Enum: []any{"NORMAL", "SOFT_FLAG", "PROBATION", "RESTRICTED", "LOCKDOWN"}},
			"last_updated_at": {Type: "string", Format: "date-time"},
		},
	}

	s["Violation"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":             {Type: "string", Format: "uuid"},
			"user_id":        {Type: "string"},
			"category":       {Type: "string", Enum: []any{"EKO", "COM", "SYS", "TRUST"}},
			"code":           {Type: "string"},
			"severity":       {Type: "integer", Minimum: floatPtr(1), Maximum: floatPtr(5)},
			"cp_delta":       {Type: "number"},
			"policy_version": {Type: "string"},
			"risk_score":     {Type: "number"},
			"source":         {Type: "string"},
			"created_at":     {Type: "string", Format: "date-time"},
		},
	}

	s["IngestResult"] = &openapi.Schema{
		AllOf: []*openapi.Schema{
			openapi.SchemaRef("Violation"),
			{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"cp_state":            openapi.SchemaRef("PenaltyState"),
					"moderation_enqueued": {Type: "boolean"},
				},
			},
		},
	}

	s["ModerationCase"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string", Format: "uuid"},
			"subject_type":  {Type: "string", Enum: []any{"VIOLATION", "APPEAL"}},
			"user_id":       {Type: "string"},
			"reference":     {Type: "string", Format: "uuid"},
			"risk_score":    {Type: "number"},
			"reason":        {Type: "string"},
			"status":        {Type: "string", Enum: []any{"PENDING", "DECIDED"}},
			"decision":      {Type: "string", Enum: []any{"APPROVE", "REJECT"}},
			"decision_note": {Type: "string"},
			"decided_by":    {Type: "string"},
			"created_at":    {Type: "string", Format: "date-time"},
			"decided_at":    {Type: "string", Format: "date-time"},
		},
	}

	s["DecisionResult"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"success":          {Type: "boolean"},
			"case_id":          {Type: "string", Format: "uuid"},
			"decision":         {Type: "string", Enum: []any{"APPROVE", "REJECT"}},
			"risk_score_after": {Type: "number"},
			"cp_delta":         {Type: "number"},
			"cp_state":         openapi.SchemaRef("PenaltyState"),
			"case":             openapi.SchemaRef("ModerationCase"),
		},
	}

	s["EnforcementDecision"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"allowed":  {Type: "boolean"},
			"regime":   {Type: "string"},
			"cp_value": {Type: "number"},
			"action":   {Type: "string"},
		},
	}

	s["CaseFile"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"user_id":           {Type: "string"},
			"privacy_profile":   {Type: "string"},
			"cp_state":          openapi.SchemaRef("PenaltyState"),
			"nova_score":        {Type: "number"},
			"recent_violations": {Type: "array", Items: openapi.SchemaRef("Violation")},
		},
	}
}

func addPolicyPaths(spec *openapi.Spec) {
	spec.Paths["/policy"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List policy versions",
			Tags:    []string{"policy"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated policy versions", "PolicyVersion"),
			},
		},
	}
	spec.Paths["/policy/current"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get the active policy version",
			Tags:    []string{"policy"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Active policy version", "PolicyVersion"),
				503: {Description: "No policy configured"},
			},
		},
	}
	spec.Paths["/policy/{version}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Get a policy version by label",
			Tags:    []string{"policy"},
			Parameters: []*openapi.Parameter{
				{Name: "version", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Policy version", "PolicyVersion"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/policy/activate"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Activate a new policy version",
			Tags:        []string{"policy"},
			RequestBody: openapi.RequestBodyJSON("PolicyVersion", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Activated policy version", "PolicyVersion"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}
}

func addLedgerPaths(spec *openapi.Spec) {
	spec.Paths["/cp/{userId}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a user's decayed penalty state",
			Tags:       []string{"ledger"},
			Parameters: []*openapi.Parameter{userIDParam()},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Penalty state", "PenaltyState"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/case/{userId}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a user's aggregated case file",
			Tags:       []string{"ledger"},
			Parameters: []*openapi.Parameter{userIDParam()},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Case file", "CaseFile"),
			},
		},
	}
}

func addViolationPaths(spec *openapi.Spec) {
	spec.Paths["/violations"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List violations",
			Tags:    []string{"violations"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("user_id", "string", "Filter by user", false),
				openapi.QueryParam("category", "string", "Filter by category", false),
				openapi.QueryParam("code", "string", "Filter by taxonomy code", false),
				openapi.QueryParam("source", "string", "Filter by reporting source", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated violations", "Violation"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Ingest a violation",
			Tags:        []string{"violations"},
			RequestBody: openapi.RequestBodyJSON("Violation", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Recorded violation with resulting state", "IngestResult"),
				400: openapi.ResponseRef("BadRequest"),
				503: {Description: "No policy configured"},
			},
		},
	}
	spec.Paths["/violations/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a violation",
			Tags:       []string{"violations"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Violation identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Violation", "Violation"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addModerationPaths(spec *openapi.Spec) {
	pending := func(subject string) *openapi.Operation {
		return &openapi.Operation{
			Summary: "List pending " + subject + " cases",
			Tags:    []string{"moderation"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("min_risk", "number", "Exclude cases below this risk score", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated cases, riskiest first", "ModerationCase"),
			},
		}
	}

	decide := &openapi.Operation{
		Summary:     "Decide a pending case",
		Tags:        []string{"moderation"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Case identifier")},
		RequestBody: openapi.RequestBodyJSON("ModerationCase", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Decision outcome", "DecisionResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	}

	spec.Paths["/mod/violations/pending"] = &openapi.PathItem{Get: pending("violation")}
	spec.Paths["/mod/appeals/pending"] = &openapi.PathItem{Get: pending("appeal")}
	spec.Paths["/mod/cases/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a moderation case",
			Tags:       []string{"moderation"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Case identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Moderation case", "ModerationCase"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
	spec.Paths["/mod/violations/{id}/decision"] = &openapi.PathItem{Post: decide}
	spec.Paths["/mod/appeals/{id}/decision"] = &openapi.PathItem{Post: decide}
	spec.Paths["/appeals"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Submit an appeal",
			Tags:        []string{"moderation"},
			RequestBody: openapi.RequestBodyJSON("ModerationCase", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Opened appeal case", "ModerationCase"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addEnforcementPaths(spec *openapi.Spec) {
	spec.Paths["/enforcement/check"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Check whether a user may perform an action",
			Tags:        []string{"enforcement"},
			RequestBody: openapi.RequestBodyJSON("EnforcementDecision", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Action allowed", "EnforcementDecision"),
				403: {Description: "Action blocked by the user's regime"},
			},
		},
	}
}

func userIDParam() *openapi.Parameter {
	return &openapi.Parameter{
		Name:     "userId",
		In:       "path",
		Required: true,
		Schema:   &openapi.Schema{Type: "string"},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
