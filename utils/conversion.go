package utils

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToDecimal coerces a loosely-typed persisted value into a decimal amount.
// Legacy invoice documents carry numbers as doubles, int32/int64, strings,
// Decimal128, or nothing at all; anything that does not parse to a finite
// number becomes zero so downstream arithmetic stays safe.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(f)
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case primitive.Decimal128:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// ToDecimalPtr is like ToDecimal but preserves absence: a nil or
// unparseable value returns nil instead of zero. Used for stored fields
// where "missing" and "zero" mean different things (e.g. invoice balance).
func ToDecimalPtr(v any) *decimal.Decimal {
	if v == nil {
		return nil
	}
	switch n := v.(type) {
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		return &d
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
	}
	d := ToDecimal(v)
	return &d
}

// ToTime coerces a loosely-typed persisted value into a timestamp.
// Accepts time.Time, mongo DateTime, RFC3339 / date-only strings, and unix
// epoch millis. Anything unparseable returns nil, which callers treat as
// "no date".
func ToTime(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		if t == nil || t.IsZero() {
			return nil
		}
		return t
	case primitive.DateTime:
		ts := t.Time().UTC()
		return &ts
	case int64:
		ts := time.UnixMilli(t).UTC()
		return &ts
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		ts := time.UnixMilli(int64(t)).UTC()
		return &ts
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				ts = ts.UTC()
				return &ts
			}
		}
		return nil
	default:
		return nil
	}
}
