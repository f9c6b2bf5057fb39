// Package points provides fixed-point arithmetic for penalty point and risk
// score values. A Points value counts thousandths, so audit recomputation is
// exact integer math with no binary floating point involved.
package points

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const scale = 1000

// Points is a non-negative rational with three decimal digits of precision,
// stored as an integer count of thousandths.
type Points int64

// Zero is the empty Points value.
const Zero Points = 0

// FromUnits returns a Points value from whole units.
func FromUnits(units int64) Points {
	return Points(units * scale)
}

// FromMillis returns a Points value from raw thousandths.
func FromMillis(millis int64) Points {
	return Points(millis)
}

// Parse converts a decimal string with at most three fractional digits.
func Parse(s string) (Points, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("points: empty value")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else {
		s = strings.TrimPrefix(s, "+")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 3 {
		return 0, fmt.Errorf("points: %q exceeds 3 fractional digits", s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("points: invalid value %q", s)
	}

	millis := units * scale
	if frac != "" {
		padded := frac + strings.Repeat("0", 3-len(frac))
		f, err := strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("points: invalid value %q", s)
		}
		millis += f
	}

	if neg {
		millis = -millis
	}
	return Points(millis), nil
}

// MustParse converts a decimal string, panicking on invalid input.
// Intended for constants and tests.
func MustParse(s string) Points {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Millis returns the raw count of thousandths.
func (p Points) Millis() int64 {
	return int64(p)
}

// Add returns p + q.
func (p Points) Add(q Points) Points {
	return p + q
}

// Sub returns p − q floored at zero. Penalty values never go negative.
func (p Points) Sub(q Points) Points {
	r := p - q
	if r < 0 {
		return 0
	}
	return r
}

// Mul returns the fixed-point product p × q.
func (p Points) Mul(q Points) Points {
	return Points(int64(p) * int64(q) / scale)
}

// MulInt returns p × n.
func (p Points) MulInt(n int64) Points {
	return Points(int64(p) * n)
}

// Clamp constrains p to [lo, hi].
func (p Points) Clamp(lo, hi Points) Points {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// DecayOver returns decay accrued at a per-day rate across elapsedSeconds.
func (p Points) DecayOver(elapsedSeconds int64) Points {
	if elapsedSeconds <= 0 {
		return 0
	}
	return Points(int64(p) * elapsedSeconds / 86400)
}

// String formats the value as a decimal with trailing zeros trimmed.
func (p Points) String() string {
	millis := int64(p)
	neg := millis < 0
	if neg {
		millis = -millis
	}

	units := millis / scale
	frac := millis % scale

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(units, 10))

	if frac != 0 {
		s := fmt.Sprintf("%03d", frac)
		s = strings.TrimRight(s, "0")
		b.WriteByte('.')
		b.WriteString(s)
	}

	return b.String()
}

// MarshalJSON emits the value as a JSON number.
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (p *Points) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("points: invalid JSON value %s", data)
		}
		n = json.Number(s)
	}

	parsed, err := Parse(n.String())
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Scan implements sql.Scanner, reading the stored thousandths count.
func (p *Points) Scan(value any) error {
	switch v := value.(type) {
	case int64:
		*p = Points(v)
		return nil
	case nil:
		*p = 0
		return nil
	default:
		return fmt.Errorf("points: cannot scan %T", value)
	}
}

// Value implements driver.Valuer, storing the thousandths count.
func (p Points) Value() (driver.Value, error) {
	return int64(p), nil
}
