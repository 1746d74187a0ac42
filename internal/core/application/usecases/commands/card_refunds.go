package commands

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/ports"
)

// cardRefunds returns money through the payment gateway once the unit of work that
// decided the refund has committed. Each outcome is recorded in a unit of work of its own:
// success settles the refund, a gateway failure leaves the payment Failed for staff to
// settle manually. Neither outcome is an error of the command.
type cardRefunds struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	clock      Clock
	logger     *slog.Logger
}

func newCardRefunds(uowFactory UoWFactory, gateway ports.PaymentGateway, clock Clock, logger *slog.Logger) cardRefunds {
	if logger == nil {
		logger = slog.Default()
	}
	return cardRefunds{
		uowFactory: uowFactory,
		gateway:    gateway,
		clock:      clock,
		logger:     logger.With("component", "CardRefunds"),
	}
}

// settle refunds every due amount. A refund that cannot be recorded is logged and left
// for staff; the remaining refunds are still attempted.
func (r cardRefunds) settle(ctx context.Context, due []order.RefundDue) {
	for _, refund := range due {
		if err := r.settleOne(ctx, refund); err != nil {
			r.logger.Error("card refund was not settled",
				"order", refund.Number,
				"amount", refund.Amount.String(),
				"error", err)
		}
	}
}

func (r cardRefunds) settleOne(ctx context.Context, due order.RefundDue) error {
	current, err := r.uowFactory.Create().OrderRepository().Get(ctx, due.Order)
	if err != nil {
		return err
	}

	_, gatewayErr := r.gateway.Refund(ctx, ports.RefundRequest{
		OrderID:          due.Order,
		OrderNumber:      due.Number,
		PaymentReference: due.PaymentReference,
		Amount:           due.Amount,
		Full:             due.Amount.Equal(current.Total()),
		Reason:           due.Reason,
	})

	uow := r.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, due.Order)
	if err != nil {
		return err
	}
	if err = o.SettleRefund(gatewayErr == nil); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if gatewayErr == nil {
		effects := newSideEffects(uow, r.clock())
		err = effects.notify(due.CustomerID, outbox.KindRefundIssued, refundPayload{
			OrderID:     due.Order,
			OrderNumber: due.Number,
			Amount:      due.Amount,
			Destination: "card",
			Reason:      due.Reason,
		})
		if err != nil {
			return err
		}
		if err = effects.flush(ctx); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
