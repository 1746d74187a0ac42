package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies store-side status changes.
//
// Confirming an order opens its delivery tracking and counts one use of its promo code.
// Cancelling a paid order refunds it: wallet, cash and bank transfer payments are credited
// to the customer's wallet in the same unit of work, card payments are refunded through
// the gateway after commit.
//
// Drivers move orders only through the delivery commands, which keep the tracking and the
// order in step. For the same reason an order whose delivery is tracked is never marked
// delivered here: the tracking must reach delivered first, through the driver.
//
// Refund outcomes after commit are logged, never returned: the cancellation is stored by
// then and the order's payment status carries the result.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     StorePolicy
	clock      Clock
	refunds    cardRefunds
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory, gateway ports.PaymentGateway, policy StorePolicy, clock Clock, logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
		refunds:    newCardRefunds(uowFactory, gateway, clock, logger),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	if actor.IsDriver() {
		return errs.NewUnauthorizedError(actor.ID().String(), "change order status outside delivery tracking")
	}

	now := h.clock()
	due, err := h.apply(ctx, command, now)
	if err != nil {
		return err
	}

	h.refunds.settle(ctx, due)
	return nil
}

func (h ChangeOrderStatusCommandHandler) apply(
	ctx context.Context, command ChangeOrderStatusCommand, now time.Time,
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

	if command.Status() == order.Delivered {
		if err = h.ensureDeliveryTracked(ctx, uow, o); err != nil {
			return nil, err
		}
	}

	if err = o.Transition(command.Status(), command.Actor(), now, h.policy.Rewards); err != nil {
		return nil, err
	}

	if o.Status() == order.Confirmed {
		t, err := tracking.NewTracking(o.ID(), now)
		if err != nil {
			return nil, err
		}
		if err = uow.TrackingRepository().Add(ctx, t); err != nil {
			return nil, err
		}
	}

	effects := newSideEffects(uow, now)
	if err = effects.applyOrderEvents(ctx, o); err != nil {
		return nil, err
	}

	if o.Status() == order.Confirmed && o.PromoCode() != "" {
		code, err := uow.PromoCodeRepository().GetForUpdate(ctx, o.PromoCode())
		if err != nil {
			return nil, err
		}
		if err = code.Consume(now); err != nil {
			return nil, err
		}
		if err = uow.PromoCodeRepository().Update(ctx, code); err != nil {
			return nil, err
		}
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

// ensureDeliveryTracked locks the order's tracking, after the order lock already held, and
// refuses to deliver the order while the tracking has not reached delivered.
func (h ChangeOrderStatusCommandHandler) ensureDeliveryTracked(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	t, err := uow.TrackingRepository().GetForUpdate(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if t.Status() != tracking.Delivered {
		return errs.NewIllegalTransitionErrorWithCause("order", o.Status().String(), order.Delivered.String(),
			fmt.Errorf("delivery tracking is %s; the driver completes the delivery", t.Status()))
	}
	return nil
}
