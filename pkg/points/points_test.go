package points_test

import (
	"encoding/json"
	"testing"

	"github.com/aurora-platform/justice/pkg/points"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"whole", "15", 15000, false},
		{"one decimal", "8.5", 8500, false},
		{"three decimals", "0.125", 125, false},
		{"zero", "0", 0, false},
		{"negative", "-2.5", -2500, false},
		{"leading plus", "+3", 3000, false},
		{"bare fraction", ".5", 500, false},
		{"too many decimals", "1.2345", 0, true},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := points.Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) = %v", tt.input, err)
			}
			if got.Millis() != tt.want {
				t.Errorf("Parse(%q) = %d millis, want %d", tt.input, got.Millis(), tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{15000, "15"},
		{8500, "8.5"},
		{125, "0.125"},
		{0, "0"},
		{-2500, "-2.5"},
		{10000, "10"},
	}

	for _, tt := range tests {
		got := points.FromMillis(tt.millis).String()
		if got != tt.want {
			t.Errorf("FromMillis(%d).String() = %q, want %q", tt.millis, got, tt.want)
		}
	}
}

func TestSubFloorsAtZero(t *testing.T) {
	got := points.FromUnits(5).Sub(points.FromUnits(8))
	if got != points.Zero {
		t.Errorf("5 - 8 = %v, want 0", got)
	}
}

func TestMul(t *testing.T) {
	// 15 * 1.5 = 22.5
	got := points.FromUnits(15).Mul(points.MustParse("1.5"))
	if got != points.MustParse("22.5") {
		t.Errorf("15 * 1.5 = %v, want 22.5", got)
	}
}

func TestClamp(t *testing.T) {
	lo, hi := points.Zero, points.FromUnits(10)

	if got := points.MustParse("10.5").Clamp(lo, hi); got != hi {
		t.Errorf("clamp over: got %v, want 10", got)
	}
	if got := points.MustParse("-1").Clamp(lo, hi); got != lo {
		t.Errorf("clamp under: got %v, want 0", got)
	}
	if got := points.MustParse("8.5").Clamp(lo, hi); got != points.MustParse("8.5") {
		t.Errorf("clamp within: got %v, want 8.5", got)
	}
}

func TestDecayOver(t *testing.T) {
	rate := points.FromUnits(1) // 1 point per day

	tests := []struct {
		name    string
		seconds int64
		want    points.Points
	}{
		{"ten days", 10 * 86400, points.FromUnits(10)},
		{"half day", 43200, points.MustParse("0.5")},
		{"zero elapsed", 0, points.Zero},
		{"negative elapsed", -60, points.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rate.DecayOver(tt.seconds); got != tt.want {
				t.Errorf("DecayOver(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		CP points.Points `json:"cp_value"`
	}

	data, err := json.Marshal(payload{CP: points.MustParse("8.5")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"cp_value":8.5}` {
		t.Errorf("marshal = %s, want {\"cp_value\":8.5}", data)
	}

	var decoded payload
	if err := json.Unmarshal([]byte(`{"cp_value":8.5}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CP != points.MustParse("8.5") {
		t.Errorf("unmarshal = %v, want 8.5", decoded.CP)
	}

	if err := json.Unmarshal([]byte(`{"cp_value":"6"}`), &decoded); err != nil {
		t.Fatalf("unmarshal string form: %v", err)
	}
	if decoded.CP != points.FromUnits(6) {
		t.Errorf("unmarshal string form = %v, want 6", decoded.CP)
	}
}

func TestScanValue(t *testing.T) {
	var p points.Points
	if err := p.Scan(int64(15000)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if p != points.FromUnits(15) {
		t.Errorf("scan = %v, want 15", p)
	}

	v, err := points.MustParse("2.5").Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != int64(2500) {
		t.Errorf("value = %v, want 2500", v)
	}

	if err := p.Scan("not-an-int"); err == nil {
		t.Error("scan of string should fail")
	}
}
