package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ErrPaymentDeclined is returned when the gateway refuses a capture. The order's payment
// status is Failed by then; staff may retry.
var ErrPaymentDeclined = errors.New("payment declined by gateway")

// CapturePaymentCommandHandler captures payments in three steps so that no entity lock is
// held during the gateway call: read the order, call the gateway, then lock the order
// and record the outcome.
//
// An order may be cancelled while the gateway call is in flight. The capture is still
// recorded and the whole amount is refunded at once, so money taken late is never kept.
type CapturePaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	clock      Clock
	refunds    cardRefunds
}

func NewCapturePaymentCommandHandler(
	uowFactory UoWFactory, gateway ports.PaymentGateway, clock Clock, logger *slog.Logger,
) CapturePaymentCommandHandler {
	return CapturePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		clock:      clock,
		refunds:    newCardRefunds(uowFactory, gateway, clock, logger),
	}
}

func (h CapturePaymentCommandHandler) Handle(ctx context.Context, command CapturePaymentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	if !actor.IsBackOffice() {
		return errs.NewUnauthorizedError(actor.ID().String(), "capture a payment")
	}

	current, err := h.uowFactory.Create().OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if current.Status() == order.Cancelled || current.Status() == order.Refunded {
		return errs.NewIllegalTransitionErrorWithCause("payment", current.PaymentStatus().String(),
			order.PaymentCaptured.String(), fmt.Errorf("order is %s", current.Status()))
	}
	if _, err = current.PaymentStatus().Capture(); err != nil {
		return err
	}

	reference := command.Reference()
	var gatewayErr error
	if current.PaymentMethod() == order.PaymentCard {
		var result ports.CaptureResult
		result, gatewayErr = h.gateway.Capture(ctx, ports.CaptureRequest{
			OrderID:          current.ID(),
			OrderNumber:      current.Number(),
			PaymentReference: current.PaymentReference(),
			Amount:           current.Total(),
		})
		reference = result.Reference
	}

	due, err := h.record(ctx, command, reference, gatewayErr)
	if err != nil {
		return err
	}
	h.refunds.settle(ctx, due)

	if gatewayErr != nil {
		return fmt.Errorf("%w: %w", ErrPaymentDeclined, gatewayErr)
	}
	return nil
}

func (h CapturePaymentCommandHandler) record(
	ctx context.Context, command CapturePaymentCommand, reference string, gatewayErr error,
) ([]order.RefundDue, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	switch {
	case gatewayErr != nil:
		err = o.FailPayment()
	case o.Status() == order.Cancelled:
		err = o.CaptureCancelled(reference)
	default:
		err = o.CapturePayment(reference)
	}
	if err != nil {
		return nil, err
	}

	effects := newSideEffects(uow, h.clock())
	if err = effects.applyOrderEvents(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = effects.flush(ctx); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return effects.cardRefunds, nil
}
