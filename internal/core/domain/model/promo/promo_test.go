package promo_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func TestNewPromoCode(t *testing.T) {
	t.Run("should normalize the code", func(t *testing.T) {
		p, err := promo.NewPromoCode(promo.Terms{
			Code: " save20 ", Discount: decimal.NewFromInt(20), Type: promo.Percent, Enabled: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "SAVE20", p.Code())
		assert.Equal(t, 0, p.UsedCount())
	})

	t.Run("should reject a percentage above 100", func(t *testing.T) {
		_, err := promo.NewPromoCode(promo.Terms{Code: "X", Discount: decimal.NewFromInt(101), Type: promo.Percent})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		_, err := promo.NewPromoCode(promo.Terms{Type: "bogo", MaxUses: ptr(0)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "code")
		assert.Contains(t, err.Error(), "type")
		assert.Contains(t, err.Error(), "maxUses")
	})
}

func TestPromoCode_Discount(t *testing.T) {
	tests := []struct {
		name      string
		terms     promo.Terms
		usedCount int
		subtotal  string
		want      string
		wantErr   error
	}{
		{
			name:     "percent",
			terms:    promo.Terms{Code: "P", Discount: decimal.NewFromInt(15), Type: promo.Percent, Enabled: true},
			subtotal: "80.10",
			want:     "12.02",
		},
		{
			name:     "fixed is capped at the subtotal",
			terms:    promo.Terms{Code: "F", Discount: decimal.NewFromInt(50), Type: promo.Fixed, Enabled: true},
			subtotal: "30.00",
			want:     "30.00",
		},
		{
			name:     "disabled",
			terms:    promo.Terms{Code: "D", Discount: decimal.NewFromInt(5), Type: promo.Fixed},
			subtotal: "30.00",
			wantErr:  promo.ErrPromoDisabled,
		},
		{
			name: "expired",
			terms: promo.Terms{
				Code: "E", Discount: decimal.NewFromInt(5), Type: promo.Fixed, Enabled: true,
				Expiry: ptr(now.Add(-time.Second)),
			},
			subtotal: "30.00",
			wantErr:  promo.ErrPromoExpired,
		},
		{
			name: "below minimum",
			terms: promo.Terms{
				Code: "M", Discount: decimal.NewFromInt(5), Type: promo.Fixed, Enabled: true,
				MinOrder: ptr(kernel.MustMoney("100.00")),
			},
			subtotal: "99.99",
			wantErr:  promo.ErrPromoBelowMinimum,
		},
		{
			name: "usage exhausted",
			terms: promo.Terms{
				Code: "SAVE20", Discount: decimal.NewFromInt(20), Type: promo.Percent, Enabled: true,
				MinOrder: ptr(kernel.MustMoney("100.00")), MaxUses: ptr(1),
			},
			usedCount: 1,
			subtotal:  "150.00",
			wantErr:   promo.ErrPromoUsageExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := promo.RestorePromoCode(snapshotOf(t, tt.terms, tt.usedCount))
			require.NoError(t, err)

			got, err := p.Discount(kernel.MustMoney(tt.subtotal), now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, errs.ErrPromoNotApplicable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPromoCode_Discount_IsIdempotent(t *testing.T) {
	p, err := promo.NewPromoCode(promo.Terms{
		Code: "ONCE", Discount: decimal.NewFromInt(10), Type: promo.Percent, Enabled: true, MaxUses: ptr(1),
	})
	require.NoError(t, err)
	before := p.Snapshot()

	first, err1 := p.Discount(kernel.MustMoney("40.00"), now)
	second, err2 := p.Discount(kernel.MustMoney("40.00"), now)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, before, p.Snapshot())
}

func TestPromoCode_Consume(t *testing.T) {
	p, err := promo.NewPromoCode(promo.Terms{
		Code: "TWICE", Discount: decimal.NewFromInt(5), Type: promo.Fixed, Enabled: true, MaxUses: ptr(2),
	})
	require.NoError(t, err)

	require.NoError(t, p.Consume(now))
	require.NoError(t, p.Consume(now))
	err = p.Consume(now)

	require.ErrorIs(t, err, promo.ErrPromoUsageExhausted)
	assert.Equal(t, 2, p.UsedCount())
}

func TestRestorePromoCode_RejectsOverusedCode(t *testing.T) {
	s := promo.Snapshot{Code: "X", Discount: decimal.NewFromInt(5), Type: promo.Fixed, MaxUses: ptr(1), UsedCount: 2}

	_, err := promo.RestorePromoCode(s)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func snapshotOf(t *testing.T, terms promo.Terms, used int) promo.Snapshot {
	t.Helper()
	return promo.Snapshot{
		Code:      terms.Code,
		Discount:  terms.Discount,
		Type:      terms.Type,
		MinOrder:  terms.MinOrder,
		MaxUses:   terms.MaxUses,
		UsedCount: used,
		Expiry:    terms.Expiry,
		Enabled:   terms.Enabled,
	}
}
