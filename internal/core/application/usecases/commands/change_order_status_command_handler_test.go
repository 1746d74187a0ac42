package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), "teleported", newActor(t, kernel.RoleAdmin))
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

// A captured pending order of 100.00 cancelled by the store is refunded in full to the
// wallet and gains exactly one history entry.
func TestChangeOrderStatusCommandHandler_CancelCapturedOrderRefundsWallet(t *testing.T) {
	f := newFixture(t)
	f.topUp(f.customer.ID(), "100.00")
	id := f.placeOrder("wallet", "", "")
	require.Equal(t, order.PaymentCaptured, f.order(id).PaymentStatus())

	require.NoError(t, f.changeStatus(id, "cancelled", f.admin))

	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	assert.Len(t, o.History(), 2)

	account := f.account(f.customer.ID())
	assert.Equal(t, "100.00", account.Balance().String())
	txs := account.Transactions()
	last := txs[len(txs)-1]
	assert.Equal(t, ledger.TypeRefund, last.Type)
	assert.Equal(t, "100.00", last.Amount.String())
	assert.Equal(t, o.Number(), last.Reference)
	requireLedgerConsistent(t, account)

	assert.Contains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_CancelUnpaidOrderRefundsNothing(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("cod", "", "")

	require.NoError(t, f.changeStatus(id, "cancelled", f.customer))

	assert.Equal(t, order.Cancelled, f.order(id).Status())
	assert.Equal(t, order.PaymentPending, f.order(id).PaymentStatus())
	assert.Empty(t, f.account(f.customer.ID()).Transactions())
}

func TestChangeOrderStatusCommandHandler_ConfirmStartsTrackingAndConsumesPromo(t *testing.T) {
	f := newFixture(t)
	f.addPromo(promo.Terms{Code: "SAVE20", Discount: decimal.NewFromInt(20), Type: promo.Percent, Enabled: true})
	id := f.placeOrder("cod", "", "SAVE20")

	require.NoError(t, f.changeStatus(id, "confirmed", f.staff))

	assert.Equal(t, order.Confirmed, f.order(id).Status())
	trk := f.tracking(id)
	assert.Equal(t, tracking.Preparing, trk.Status())
	assert.Nil(t, trk.DriverID())
	assert.Equal(t, 1, f.promo("SAVE20").UsedCount())
	assert.Contains(t, f.pendingKinds(), outbox.KindOrderStatusChanged)
}

func TestChangeOrderStatusCommandHandler_ConfirmFailsWhenPromoIsUsedUp(t *testing.T) {
	f := newFixture(t)
	maxUses := 1
	f.addPromo(promo.Terms{Code: "ONCE", Discount: decimal.NewFromInt(5), Type: promo.Fixed, MaxUses: &maxUses, Enabled: true})
	first := f.placeOrder("cod", "", "ONCE")
	second := f.placeOrder("cod", "", "ONCE")
	require.NoError(t, f.changeStatus(first, "confirmed", f.staff))

	err := f.changeStatus(second, "confirmed", f.staff)

	require.ErrorIs(t, err, errs.ErrPromoNotApplicable)
	assert.ErrorIs(t, err, promo.ErrPromoUsageExhausted)
	assert.Equal(t, order.Pending, f.order(second).Status())
	assert.Equal(t, 1, f.promo("ONCE").UsedCount())
	_, err = f.uowFactory.Create().TrackingRepository().Get(f.ctx, second)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_CancelCardOrderRefundsThroughGateway(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-7", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "cap-7"}, nil).Once()
	capture, err := commands.NewCapturePaymentCommand(id, "", f.staff)
	require.NoError(t, err)
	require.NoError(t, commands.NewCapturePaymentCommandHandler(f.uowFactory, f.gateway, fixedClock, f.logger).Handle(f.ctx, capture))

	f.gateway.On("Refund", mock.Anything, mock.MatchedBy(func(req ports.RefundRequest) bool {
		return req.OrderID.IsEqual(id) && req.PaymentReference == "cap-7" && req.Full &&
			req.Amount.Equal(kernel.MustMoney("100.00"))
	})).Return(ports.RefundResult{Reference: "ref-7"}, nil).Once()

	require.NoError(t, f.changeStatus(id, "cancelled", f.admin))

	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	assert.Empty(t, f.account(f.customer.ID()).Transactions(), "card refunds do not touch the wallet")
	assert.Contains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_FailedCardRefundMarksPaymentFailed(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-8", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "cap-8"}, nil).Once()
	capture, err := commands.NewCapturePaymentCommand(id, "", f.staff)
	require.NoError(t, err)
	require.NoError(t, commands.NewCapturePaymentCommandHandler(f.uowFactory, f.gateway, fixedClock, f.logger).Handle(f.ctx, capture))
	f.gateway.On("Refund", mock.Anything, mock.Anything).Return(ports.RefundResult{}, errors.New("gateway timeout")).Once()

	require.NoError(t, f.changeStatus(id, "cancelled", f.admin))

	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status(), "the transition completes regardless of the gateway")
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	assert.NotContains(t, f.pendingKinds(), outbox.KindRefundIssued)
}

func TestChangeOrderStatusCommandHandler_Authorization(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("cod", "", "")

	err := f.changeStatus(id, "confirmed", f.customer)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	err = f.changeStatus(id, "cancelled", f.driver)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	err = f.changeStatus(id, "cancelled", newActor(t, kernel.RoleCustomer))
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	assert.Equal(t, order.Pending, f.order(id).Status())
	assert.Len(t, f.order(id).History(), 1)
}

func TestChangeOrderStatusCommandHandler_TerminalStatusRejectsEveryTarget(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("cod", "", "")
	require.NoError(t, f.changeStatus(id, "cancelled", f.staff))

	for _, target := range []string{"pending", "confirmed", "processing", "out_for_delivery", "delivered", "cancelled", "refunded"} {
		err := f.changeStatus(id, target, f.admin)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition, target)
	}
	assert.Len(t, f.order(id).History(), 2)
}

func TestChangeOrderStatusCommandHandler_OrderNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.changeStatus(kernel.NewUUID(), "confirmed", f.staff)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_StaffCannotDeliverAheadOfTracking(t *testing.T) {
	f := newFixture(t)
	f.registerDriver(f.driver, 3)
	id := f.placeOrder("cod", "", "")
	f.readyForPickup(id)
	require.NoError(t, f.advance(id, f.driver))
	require.Equal(t, order.OutForDelivery, f.order(id).Status())
	require.Equal(t, tracking.PickedUp, f.tracking(id).Status())

	err := f.changeStatus(id, "delivered", f.staff)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.OutForDelivery, f.order(id).Status())
	assert.Equal(t, order.PaymentPending, f.order(id).PaymentStatus())
	assert.Equal(t, tracking.PickedUp, f.tracking(id).Status())
	assert.Empty(t, f.account(f.customer.ID()).Transactions(), "no cashback before the drop-off")

	for range 3 {
		require.NoError(t, f.advance(id, f.driver))
	}
	assert.Equal(t, order.Delivered, f.order(id).Status())
	assert.Equal(t, tracking.Delivered, f.tracking(id).Status())
}

func TestChangeOrderStatusCommandHandler_ConcurrentConfirmationsShareLastPromoUse(t *testing.T) {
	f := newFixture(t)
	maxUses := 1
	f.addPromo(promo.Terms{Code: "LAST", Discount: decimal.NewFromInt(5), Type: promo.Fixed, MaxUses: &maxUses, Enabled: true})
	ids := []kernel.UUID{f.placeOrder("cod", "", "LAST"), f.placeOrder("cod", "", "LAST")}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewChangeOrderStatusCommand(id, "confirmed", f.staff)
			if err == nil {
				err = commands.NewChangeOrderStatusCommandHandler(f.uowFactory, f.gateway, f.policy, fixedClock, f.logger).
					Handle(f.ctx, cmd)
			}
			if err != nil {
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], errs.ErrPromoNotApplicable)
	assert.ErrorIs(t, failed[0], promo.ErrPromoUsageExhausted)
	assert.Equal(t, 1, f.promo("LAST").UsedCount())

	confirmed := 0
	for _, id := range ids {
		if f.order(id).Status() == order.Confirmed {
			confirmed++
			continue
		}
		assert.Equal(t, order.Pending, f.order(id).Status())
		_, err := f.uowFactory.Create().TrackingRepository().Get(f.ctx, id)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	}
	assert.Equal(t, 1, confirmed)
}

func TestChangeOrderStatusCommandHandler_UnrecordedCardRefundIsLoggedNotReturned(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-12", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "cap-12"}, nil).Once()
	require.NoError(t, f.capture(id, "", f.staff))

	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()
	f.gateway.On("Refund", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(ports.RefundResult{Reference: "ref-12"}, nil).Once()
	cmd, err := commands.NewChangeOrderStatusCommand(id, "cancelled", f.admin)
	require.NoError(t, err)

	err = commands.NewChangeOrderStatusCommandHandler(f.uowFactory, f.gateway, f.policy, fixedClock, f.logger).Handle(ctx, cmd)

	require.NoError(t, err, "the cancellation has already committed")
	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentCaptured, o.PaymentStatus(), "the outcome is left for staff")
	assert.Contains(t, f.logs.String(), "card refund was not settled")
	assert.Contains(t, f.logs.String(), o.Number())
	f.gateway.AssertExpectations(t)
}
