package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. It prices the lines with the store policy,
// previews the promo discount, and for wallet payments debits the customer's balance in
// the same unit of work. The promo code's use is counted when the order is confirmed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, policy, SystemClock)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPromoNotApplicable):
//	    // show the reason to the customer
//	case errors.Is(err, errs.ErrInsufficientBalance):
//	    // wallet payment is not covered
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     StorePolicy
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, policy StorePolicy, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := h.clock()
	subtotal := command.Subtotal()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	checkout := order.Checkout{
		CustomerID:       command.CustomerID(),
		Items:            command.Items(),
		PromoCode:        command.PromoCode(),
		DeliveryFee:      h.policy.deliveryFeeFor(subtotal),
		VATRate:          h.policy.VATRate,
		PaymentMethod:    command.PaymentMethod(),
		PaymentReference: command.PaymentReference(),
		Address:          command.Address(),
	}

	if command.PromoCode() != "" {
		code, err := uow.PromoCodeRepository().Get(ctx, command.PromoCode())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewPromoNotApplicableError(command.PromoCode(), err)
		}
		if err != nil {
			return err
		}
		if checkout.Discount, err = code.Discount(subtotal, now); err != nil {
			return err
		}
	}

	o, err := order.NewOrder(command.OrderID(), checkout, command.Actor(), now)
	if err != nil {
		return err
	}

	effects := newSideEffects(uow, now)
	if o.PaymentMethod() == order.PaymentWallet {
		account, err := effects.account(ctx, o.CustomerID())
		if err != nil {
			return err
		}
		tx, err := account.Debit(o.Total(), "Payment for order "+o.Number(), o.Number(), now)
		if err != nil {
			return err
		}
		if err = o.CapturePayment("wallet:" + tx.ID.String()); err != nil {
			return err
		}
	}

	if err = effects.applyOrderEvents(ctx, o); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = effects.flush(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
