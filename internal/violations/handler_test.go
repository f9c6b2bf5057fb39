package violations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aurora-platform/justice/internal/enforcement"
	"github.com/aurora-platform/justice/internal/ledger"
	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/handlers"
	"github.com/aurora-platform/justice/pkg/pagination"
	"github.com/aurora-platform/justice/pkg/points"
)

type mockSystem struct {
	ingestFn     func(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error)
	listFn       func(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error)
	findFn       func(ctx context.Context, id uuid.UUID) (*violations.Violation, error)
	listRecentFn func(ctx context.Context, userID string, limit int) ([]violations.Violation, error)
}

func (m *mockSystem) Handler() *violations.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Ingest(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error) {
	return m.ingestFn(ctx, cmd)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*violations.Violation, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) ListRecent(ctx context.Context, userID string, limit int) ([]violations.Violation, error) {
	return m.listRecentFn(ctx, userID, limit)
}

func newTestHandler(sys *mockSystem) *violations.Handler {
	return violations.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *violations.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleViolation() violations.Violation {
	return violations.Violation{
		ID:            uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		UserID:        "user-1",
		Category:      policy.CategoryEko,
		Code:          "FAKE_DELIVERY",
		Severity:      3,
		CPDelta:       points.MustParse("20"),
		PolicyVersion: "1.0",
		CreatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHandlerIngest(t *testing.T) {
	v := sampleViolation()
	sys := &mockSystem{
		ingestFn: func(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error) {
			return &violations.IngestResult{
				Violation: v,
				State: &ledger.PenaltyState{
					UserID:  cmd.UserID,
					CPValue: v.CPDelta,
					Regime:  enforcement.RegimeSoftFlag,
				},
				Enqueued: false,
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	body, _ := json.Marshal(validIngest())
	req := httptest.NewRequest("POST", "/violations", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var result violations.IngestResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Violation.ID != v.ID {
		t.Errorf("ID = %s, want %s", result.Violation.ID, v.ID)
	}
	if result.State == nil || result.State.Regime != enforcement.RegimeSoftFlag {
		t.Errorf("State = %+v, want SOFT_FLAG regime", result.State)
	}
}

// The violation fields sit at the top level of the ingest response; state
// and handoff status ride alongside rather than wrapping the violation.
func TestHandlerIngestResponseShape(t *testing.T) {
	v := sampleViolation()
	sys := &mockSystem{
		ingestFn: func(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error) {
			return &violations.IngestResult{
				Violation: v,
				State: &ledger.PenaltyState{
					UserID:  cmd.UserID,
					CPValue: v.CPDelta,
					Regime:  enforcement.RegimeNormal,
				},
				Enqueued: true,
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	body, _ := json.Marshal(validIngest())
	req := httptest.NewRequest("POST", "/violations", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"id", "user_id", "category", "cp_delta", "cp_state", "moderation_enqueued"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("response missing top-level key %q", key)
		}
	}
	if _, ok := raw["violation"]; ok {
		t.Error("response nests the violation, want flattened fields")
	}
	var id string
	if err := json.Unmarshal(raw["id"], &id); err != nil || id != v.ID.String() {
		t.Errorf("id = %s, want %s", raw["id"], v.ID)
	}
}

func TestHandlerIngestInvalidCategory(t *testing.T) {
	sys := &mockSystem{
		ingestFn: func(ctx context.Context, cmd violations.IngestCommand) (*violations.IngestResult, error) {
			return nil, violations.ErrInvalidCategory
		},
	}
	mux := setupMux(newTestHandler(sys))

	cmd := validIngest()
	cmd.Category = policy.Category("SPAM")
	body, _ := json.Marshal(cmd)

	req := httptest.NewRequest("POST", "/violations", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var errBody handlers.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errBody.Error != "INVALID_CATEGORY" {
		t.Errorf("error code = %q, want INVALID_CATEGORY", errBody.Error)
	}
}

func TestHandlerFind(t *testing.T) {
	v := sampleViolation()
	sys := &mockSystem{
		findFn: func(ctx context.Context, id uuid.UUID) (*violations.Violation, error) {
			if id != v.ID {
				return nil, violations.ErrNotFound
			}
			return &v, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	req := httptest.NewRequest("GET", "/violations/"+v.ID.String(), nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHandlerFindNotFound(t *testing.T) {
	sys := &mockSystem{
		findFn: func(ctx context.Context, id uuid.UUID) (*violations.Violation, error) {
			return nil, violations.ErrNotFound
		},
	}
	mux := setupMux(newTestHandler(sys))

	req := httptest.NewRequest("GET", "/violations/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(ctx context.Context, page pagination.PageRequest, filters violations.Filters) (*pagination.PageResult[violations.Violation], error) {
			if filters.UserID == nil || *filters.UserID != "user-1" {
				t.Errorf("UserID filter = %v, want user-1", filters.UserID)
			}
			result := pagination.NewPageResult([]violations.Violation{sampleViolation()}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	req := httptest.NewRequest("GET", "/violations?user_id=user-1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
