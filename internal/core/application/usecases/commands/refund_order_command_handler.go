package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// RefundOrderCommandHandler refunds delivered orders, fully or in part. Money goes back
// the way it came: to the wallet for non-card payments, through the gateway for cards.
type RefundOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	refunds    cardRefunds
}

func NewRefundOrderCommandHandler(
	uowFactory UoWFactory, gateway ports.PaymentGateway, clock Clock, logger *slog.Logger,
) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		refunds:    newCardRefunds(uowFactory, gateway, clock, logger),
	}
}

func (h RefundOrderCommandHandler) Handle(ctx context.Context, command RefundOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	due, err := h.apply(ctx, command, h.clock())
	if err != nil {
		return err
	}

	h.refunds.settle(ctx, due)
	return nil
}

func (h RefundOrderCommandHandler) apply(ctx context.Context, command RefundOrderCommand, now time.Time) ([]order.RefundDue, error) {
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

	if err = o.Refund(command.Amount(), command.Reason(), command.Actor(), now); err != nil {
		return nil, err
	}

	effects := newSideEffects(uow, now)
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
