package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f *fixture) capture(orderID kernel.UUID, reference string, actor kernel.Actor) error {
	f.t.Helper()
	cmd, err := commands.NewCapturePaymentCommand(orderID, reference, actor)
	require.NoError(f.t, err)
	return commands.NewCapturePaymentCommandHandler(f.uowFactory, f.gateway, fixedClock, f.logger).Handle(f.ctx, cmd)
}

func TestCapturePaymentCommandHandler_CardCapturedThroughGateway(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-77", "")
	f.gateway.On("Capture", mock.Anything, mock.MatchedBy(func(req ports.CaptureRequest) bool {
		return req.OrderID.IsEqual(id) && req.PaymentReference == "auth-77" && req.Amount.String() == "100.00"
	})).Return(ports.CaptureResult{Reference: "mp-1001", Status: "approved"}, nil).Once()

	err := f.capture(id, "", f.staff)

	require.NoError(t, err)
	o := f.order(id)
	assert.Equal(t, order.PaymentCaptured, o.PaymentStatus())
	assert.Equal(t, "mp-1001", o.PaymentReference())
	f.gateway.AssertExpectations(t)
}

func TestCapturePaymentCommandHandler_DeclinedCaptureCanBeRetried(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-77", "")
	declined := errors.New("insufficient funds")
	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{}, declined).Once()

	err := f.capture(id, "", f.staff)

	require.ErrorIs(t, err, commands.ErrPaymentDeclined)
	assert.ErrorIs(t, err, declined)
	assert.Equal(t, order.PaymentFailed, f.order(id).PaymentStatus())

	f.gateway.On("Capture", mock.Anything, mock.Anything).Return(ports.CaptureResult{Reference: "mp-1002"}, nil).Once()
	require.NoError(t, f.capture(id, "", f.admin))
	assert.Equal(t, order.PaymentCaptured, f.order(id).PaymentStatus())
	f.gateway.AssertExpectations(t)
}

func TestCapturePaymentCommandHandler_BankTransferRecordedWithoutGateway(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("bank_transfer", "", "")

	err := f.capture(id, "TRX-9", f.staff)

	require.NoError(t, err)
	o := f.order(id)
	assert.Equal(t, order.PaymentCaptured, o.PaymentStatus())
	assert.Equal(t, "TRX-9", o.PaymentReference())
	f.gateway.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestCapturePaymentCommandHandler_AlreadyCaptured(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("bank_transfer", "", "")
	require.NoError(t, f.capture(id, "TRX-9", f.staff))

	err := f.capture(id, "TRX-10", f.staff)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, "TRX-9", f.order(id).PaymentReference())
}

func TestCapturePaymentCommandHandler_CustomerCannotCapture(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("bank_transfer", "", "")

	err := f.capture(id, "TRX-9", f.customer)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.PaymentPending, f.order(id).PaymentStatus())
}

func TestCapturePaymentCommandHandler_CancelledOrder(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("bank_transfer", "", "")
	require.NoError(t, f.changeStatus(id, "cancelled", f.staff))

	err := f.capture(id, "TRX-9", f.staff)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, order.PaymentPending, f.order(id).PaymentStatus())
}

func TestCapturePaymentCommandHandler_CancelledOrderIsNotSentToGateway(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-5", "")
	require.NoError(t, f.changeStatus(id, "cancelled", f.customer))

	err := f.capture(id, "", f.staff)

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	f.gateway.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything)
}

func TestCapturePaymentCommandHandler_CancelDuringCaptureRefundsTheCard(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-9", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			require.NoError(t, f.changeStatus(id, "cancelled", f.customer))
		}).
		Return(ports.CaptureResult{Reference: "cap-9"}, nil).Once()
	f.gateway.On("Refund", mock.Anything, mock.MatchedBy(func(req ports.RefundRequest) bool {
		return req.OrderID.IsEqual(id) && req.PaymentReference == "cap-9" && req.Full &&
			req.Amount.Equal(kernel.MustMoney("100.00"))
	})).Return(ports.RefundResult{Reference: "ref-9"}, nil).Once()

	err := f.capture(id, "", f.staff)

	require.NoError(t, err)
	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	assert.Equal(t, "100.00", o.RefundedAmount().String())
	assert.Empty(t, f.account(f.customer.ID()).Transactions())
	assert.Contains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertExpectations(t)
}

func TestCapturePaymentCommandHandler_CancelDuringCaptureWithFailedRefund(t *testing.T) {
	f := newFixture(t)
	id := f.placeOrder("card", "auth-10", "")
	f.gateway.On("Capture", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			require.NoError(t, f.changeStatus(id, "cancelled", f.staff))
		}).
		Return(ports.CaptureResult{Reference: "cap-10"}, nil).Once()
	f.gateway.On("Refund", mock.Anything, mock.Anything).
		Return(ports.RefundResult{}, errors.New("gateway timeout")).Once()

	err := f.capture(id, "", f.staff)

	require.NoError(t, err)
	o := f.order(id)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, order.PaymentFailed, o.PaymentStatus(), "left for staff to settle by hand")
	assert.Equal(t, "100.00", o.RefundedAmount().String())
	assert.NotContains(t, f.pendingKinds(), outbox.KindRefundIssued)
	f.gateway.AssertExpectations(t)
}
