package violations_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/aurora-platform/justice/internal/policy"
	"github.com/aurora-platform/justice/internal/violations"
	"github.com/aurora-platform/justice/pkg/points"
)

func ptr[T any](v T) *T {
	return &v
}

func validIngest() violations.IngestCommand {
	return violations.IngestCommand{
		UserID:   "user-1",
		Category: policy.CategoryEko,
		Code:     "FAKE_DELIVERY",
		Severity: 3,
	}
}

func TestIngestCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*violations.IngestCommand)
		wantErr error
	}{
		{"valid", func(c *violations.IngestCommand) {}, nil},
		{"valid with risk", func(c *violations.IngestCommand) {
			c.RiskScore = ptr(points.MustParse("7.5"))
		}, nil},
		{"missing user", func(c *violations.IngestCommand) { c.UserID = "" }, violations.ErrInvalidRequest},
		{"missing code", func(c *violations.IngestCommand) { c.Code = "" }, violations.ErrInvalidRequest},
		{"unknown category", func(c *violations.IngestCommand) {
			c.Category = policy.Category("SPAM")
		}, violations.ErrInvalidCategory},
		{"severity too low", func(c *violations.IngestCommand) { c.Severity = 0 }, violations.ErrInvalidSeverity},
		{"severity too high", func(c *violations.IngestCommand) { c.Severity = 6 }, violations.ErrInvalidSeverity},
		{"risk below range", func(c *violations.IngestCommand) {
			c.RiskScore = ptr(points.FromMillis(-1))
		}, violations.ErrInvalidRequest},
		{"risk above range", func(c *violations.IngestCommand) {
			c.RiskScore = ptr(points.MustParse("10.001"))
		}, violations.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validIngest()
			tt.mutate(&cmd)

			err := cmd.Validate()
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

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("user_id", "user-1")
	values.Set("category", "COM")
	values.Set("code", "HARASSMENT")
	values.Set("source", "guardian")

	f := violations.FiltersFromQuery(values)

	if f.UserID == nil || *f.UserID != "user-1" {
		t.Errorf("UserID = %v, want user-1", f.UserID)
	}
	if len(f.Categories) != 1 || f.Categories[0] != policy.CategoryCom {
		t.Errorf("Categories = %v, want [COM]", f.Categories)
	}
	if f.Code == nil || *f.Code != "HARASSMENT" {
		t.Errorf("Code = %v, want HARASSMENT", f.Code)
	}
	if f.Source == nil || *f.Source != "guardian" {
		t.Errorf("Source = %v, want guardian", f.Source)
	}
}

func TestFiltersFromQueryMultipleCategories(t *testing.T) {
	values := url.Values{}
	values.Add("category", "COM")
	values.Add("category", "SYS")

	f := violations.FiltersFromQuery(values)

	want := []policy.Category{policy.CategoryCom, policy.CategorySys}
	if len(f.Categories) != len(want) {
		t.Fatalf("Categories = %v, want %v", f.Categories, want)
	}
	for i, c := range want {
		if f.Categories[i] != c {
			t.Errorf("Categories[%d] = %s, want %s", i, f.Categories[i], c)
		}
	}
}

func TestFiltersFromQueryEmpty(t *testing.T) {
	f := violations.FiltersFromQuery(url.Values{})

	if f.UserID != nil || f.Categories != nil || f.Code != nil || f.Source != nil {
		t.Errorf("empty query should produce empty filters, got %+v", f)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{violations.ErrNotFound, 404},
		{violations.ErrInvalidRequest, 400},
		{violations.ErrInvalidCategory, 400},
		{violations.ErrInvalidSeverity, 400},
		{policy.ErrNoPolicyConfigured, 503},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := violations.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
