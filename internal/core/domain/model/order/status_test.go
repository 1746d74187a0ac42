package order_test

import (
	"encoding/json"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Transition(t *testing.T) {
	tests := []struct {
		from, to order.Status
		legal    bool
	}{
		{order.Pending, order.Confirmed, true},
		{order.Pending, order.Cancelled, true},
		{order.Pending, order.Processing, false},
		{order.Confirmed, order.Processing, true},
		{order.Confirmed, order.OutForDelivery, false},
		{order.Processing, order.OutForDelivery, true},
		{order.Processing, order.ReadyForPickup, false},
		{order.ReadyForPickup, order.OutForDelivery, true},
		{order.ReadyForPickup, order.Cancelled, true},
		{order.OutForDelivery, order.Delivered, true},
		{order.OutForDelivery, order.Cancelled, true},
		{order.Delivered, order.Refunded, false},
		{order.Delivered, order.Cancelled, false},
		{order.Cancelled, order.Pending, false},
		{order.Refunded, order.Delivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)

			if tt.legal {
				require.NoError(t, err)
				assert.Equal(t, tt.to, got)
				return
			}
			require.ErrorIs(t, err, errs.ErrIllegalTransition)
			assert.Equal(t, order.Unknown, got)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Refunded.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.ReadyForPickup.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("out_for_delivery")
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, s)

	_, err = order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Status order.Status `json:"status"`
	}{order.ReadyForPickup})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ready_for_pickup"}`, string(b))

	var decoded struct {
		Status order.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"refunded"}`), &decoded))
	assert.Equal(t, order.Refunded, decoded.Status)
}

func TestPaymentStatus(t *testing.T) {
	assert.True(t, order.PaymentCaptured.IsSettled())
	assert.True(t, order.PaymentPartiallyRefunded.IsSettled())
	assert.False(t, order.PaymentAuthorized.IsSettled())

	_, err := order.PaymentRefunded.Capture()
	require.ErrorIs(t, err, errs.ErrIllegalTransition)

	next, err := order.PaymentFailed.Authorize()
	require.NoError(t, err)
	assert.Equal(t, order.PaymentAuthorized, next)

	assert.True(t, order.PaymentWallet.RefundsToWallet())
	assert.False(t, order.PaymentCard.RefundsToWallet())
}
