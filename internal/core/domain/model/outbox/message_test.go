package outbox_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	recipient := kernel.NewUUID()

	m, err := outbox.NewMessage(recipient, outbox.KindOrderStatusChanged, map[string]string{"status": "confirmed"}, now)

	require.NoError(t, err)
	assert.False(t, m.ID.IsZero())
	assert.True(t, m.RecipientID.IsEqual(recipient))
	assert.JSONEq(t, `{"status":"confirmed"}`, string(m.Payload))
	assert.False(t, m.IsSent())

	_, err = outbox.NewMessage(recipient, outbox.KindOrderStatusChanged, nil, now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = outbox.NewMessage(recipient, outbox.KindOrderStatusChanged, make(chan int), now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMessage_Delivery(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	m, err := outbox.NewMessage(kernel.NewUUID(), outbox.KindRefundIssued, struct{}{}, now)
	require.NoError(t, err)

	m.MarkFailed(errors.New("broker unavailable"))
	assert.False(t, m.IsSent())
	assert.Equal(t, 1, m.Attempts)
	assert.Equal(t, "broker unavailable", m.LastError)

	m.MarkSent(now.Add(time.Second))
	assert.True(t, m.IsSent())
	assert.Equal(t, 2, m.Attempts)
	assert.Empty(t, m.LastError)
}
