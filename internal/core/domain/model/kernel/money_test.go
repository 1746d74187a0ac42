package kernel_test

import (
	"encoding/json"
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps two places", "100.00", "100.00"},
		{"pads integers", "5", "5.00"},
		{"rounds half away from zero", "2.345", "2.35"},
		{"rounds down", "2.344", "2.34"},
		{"negative", "-75.005", "-75.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := kernel.MoneyFromString(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoney_FromString_Invalid(t *testing.T) {
	_, err := kernel.MoneyFromString("ten")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := kernel.MustMoney("100.00")
	b := kernel.MustMoney("25.50")

	assert.Equal(t, "125.50", a.Add(b).String())
	assert.Equal(t, "74.50", a.Sub(b).String())
	assert.Equal(t, "-25.50", b.Neg().String())
	assert.Equal(t, "5.00", a.Percent(decimal.NewFromInt(5)).String())
	assert.Equal(t, "38.25", b.Mul(decimal.RequireFromString("1.5")).String())
	assert.True(t, a.Min(b).Equal(b))
	assert.True(t, a.GreaterThan(b))
	assert.True(t, b.LessThan(a))
	assert.True(t, kernel.ZeroMoney().IsZero())
	assert.True(t, b.Neg().IsNegative())
	assert.InDelta(t, 25.5, b.Float64(), 0.0001)
}

func TestMoney_ZeroValueIsZero(t *testing.T) {
	var m kernel.Money

	assert.True(t, m.IsZero())
	assert.Equal(t, "0.00", m.String())
	assert.Equal(t, "10.00", m.Add(kernel.MustMoney("10")).String())
}

func TestMoney_JSON(t *testing.T) {
	raw, err := json.Marshal(kernel.MustMoney("12.3"))
	require.NoError(t, err)
	assert.JSONEq(t, `"12.30"`, string(raw))

	var fromString kernel.Money
	require.NoError(t, json.Unmarshal([]byte(`"99.999"`), &fromString))
	assert.Equal(t, "100.00", fromString.String())

	var fromNumber kernel.Money
	require.NoError(t, json.Unmarshal([]byte(`42.1`), &fromNumber))
	assert.Equal(t, "42.10", fromNumber.String())
}

func TestMustMoney_PanicsOnGarbage(t *testing.T) {
	assert.Panics(t, func() { kernel.MustMoney("abc") })
}
