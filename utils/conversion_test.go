package utils

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"float64", 12.5, "12.5"},
		{"float64 NaN", math.NaN(), "0"},
		{"float64 +Inf", math.Inf(1), "0"},
		{"int", 7, "7"},
		{"int32", int32(-3), "-3"},
		{"int64", int64(250), "250"},
		{"numeric string", "99.95", "99.95"},
		{"padded string", "  42 ", "42"},
		{"empty string", "", "0"},
		{"garbage string", "not-a-number", "0"},
		{"bool", true, "0"},
		{"map", map[string]any{"amount": 5}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"ToDecimal(%v) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestToDecimal_Decimal128(t *testing.T) {
	d128, err := primitive.ParseDecimal128("123.45")
	require.NoError(t, err)
	assert.True(t, ToDecimal(d128).Equal(decimal.RequireFromString("123.45")))
}

func TestToDecimalPtr(t *testing.T) {
	assert.Nil(t, ToDecimalPtr(nil))
	assert.Nil(t, ToDecimalPtr(""))
	assert.Nil(t, ToDecimalPtr("garbage"))
	assert.Nil(t, ToDecimalPtr(math.NaN()))

	got := ToDecimalPtr(0.0)
	require.NotNil(t, got, "explicit zero must survive as a value")
	assert.True(t, got.IsZero())

	got = ToDecimalPtr("150.75")
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.RequireFromString("150.75")))
}

func TestToTime(t *testing.T) {
	assert.Nil(t, ToTime(nil))
	assert.Nil(t, ToTime(""))
	assert.Nil(t, ToTime("next tuesday"))
	assert.Nil(t, ToTime(time.Time{}))
	assert.Nil(t, ToTime(math.NaN()))

	got := ToTime("2025-03-01T10:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), *got)

	got = ToTime("2025-03-01")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *got)

	now := time.Now()
	got = ToTime(now)
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))

	got = ToTime(primitive.NewDateTimeFromTime(time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC), *got)

	got = ToTime(int64(1735689600000)) // 2025-01-01T00:00:00Z in millis
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *got)
}
