package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f *fixture) refund(orderID kernel.UUID, amount string, actor kernel.Actor) error {
	f.t.Helper()
	var money *kernel.Money
	if amount != "" {
		m := kernel.MustMoney(amount)
		money = &m
	}
	cmd, err := commands.NewRefundOrderCommand(orderID, money, "spoiled on arrival", actor)
	require.NoError(f.t, err)
	return commands.NewRefundOrderCommandHandler(f.uowFactory, f.gateway, fixedClock, f.logger).Handle(f.ctx, cmd)
}

func TestRefundOrderCommandHandler_PartialThenRemainingToWallet(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	id := f.placeOrder("cod", "", "")
	f.deliver(id)
	require.Equal(t, "5.00", f.account(f.customer.ID()).Balance().String(), "cashback")

	require.NoError(t, f.refund(id, "30.00", f.admin))

	o := f.order(id)
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, order.PaymentPartiallyRefunded, o.PaymentStatus())
	assert.Equal(t, "30.00", o.RefundedAmount().String())
	account := f.account(f.customer.ID())
	assert.Equal(t, "35.00", account.Balance().String())
	last := account.Transactions()[len(account.Transactions())-1]
	assert.Equal(t, ledger.TypeRefund, last.Type)
	assert.Equal(t, o.Number(), last.Reference)

	require.NoError(t, f.refund(id, "", f.admin))

	o = f.order(id)
	assert.Equal(t, order.Refunded, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	account = f.account(f.customer.ID())
	assert.Equal(t, "105.00", account.Balance().String())
	requireLedgerConsistent(t, account)
	assert.Contains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestRefundOrderCommandHandler_MoreThanRemaining(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	id := f.placeOrder("cod", "", "")
	f.deliver(id)
	require.NoError(t, f.refund(id, "80.00", f.admin))

	err := f.refund(id, "20.01", f.admin)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, "80.00", f.order(id).RefundedAmount().String())
	assert.Equal(t, "85.00", f.account(f.customer.ID()).Balance().String())
}

func TestRefundOrderCommandHandler_CardGoesThroughGateway(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	id := f.placeOrder("card", "auth-1", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "mp-1"}, nil).Once()
	require.NoError(t, f.capture(id, "", f.staff))
	f.deliver(id)
	f.gateway.On("Refund", mock.Anything, mock.MatchedBy(func(req ports.RefundRequest) bool {
		return req.PaymentReference == "mp-1" && req.Full && req.Amount.String() == "100.00"
	})).Return(ports.RefundResult{Reference: "rf-1", Status: "approved"}, nil).Once()

	require.NoError(t, f.refund(id, "", f.admin))

	o := f.order(id)
	assert.Equal(t, order.Refunded, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	assert.Equal(t, "5.00", f.account(f.customer.ID()).Balance().String(), "only the cashback")
	assert.Contains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertExpectations(t)
}

func TestRefundOrderCommandHandler_FailedCardRefundLeftForStaff(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	id := f.placeOrder("card", "auth-1", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "mp-1"}, nil).Once()
	require.NoError(t, f.capture(id, "", f.staff))
	f.deliver(id)
	f.gateway.On("Refund", mock.Anything, mock.MatchedBy(func(req ports.RefundRequest) bool {
		return !req.Full
	})).Return(ports.RefundResult{}, errors.New("gateway timeout")).Once()

	err := f.refund(id, "10.00", f.admin)

	require.NoError(t, err)
	o := f.order(id)
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	assert.NotContains(t, f.pendingKinds(), outbox.KindRefundIssued)
}

func TestRefundOrderCommandHandler_Rejections(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	pending := f.placeOrder("cod", "", "")
	delivered := f.placeOrder("bank_transfer", "", "")
	f.deliver(delivered)

	t.Run("staff cannot refund", func(t *testing.T) {
		err := f.refund(pending, "", f.staff)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("order not delivered", func(t *testing.T) {
		err := f.refund(pending, "", f.admin)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("payment never captured", func(t *testing.T) {
		err := f.refund(delivered, "", f.admin)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		err := f.refund(kernel.NewUUID(), "", f.admin)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
