package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRefundOrderCommandIsNotConstructed = errors.New(
	"RefundOrderCommand must be created via NewRefundOrderCommand constructor",
)

// RefundOrderCommand returns money for a delivered order. A nil amount refunds
// everything not refunded yet.
type RefundOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  *kernel.Money
	reason  string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewRefundOrderCommand(
	orderID kernel.UUID, amount *kernel.Money, reason string, actor kernel.Actor,
) (RefundOrderCommand, error) {
	cmd := RefundOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setActor(actor),
	); err != nil {
		return RefundOrderCommand{}, err
	}

	return cmd, nil
}

func (c RefundOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
}

func (c RefundOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the requested amount, or nil for a full refund.
func (c RefundOrderCommand) Amount() *kernel.Money {
	return c.amount
}

func (c RefundOrderCommand) Reason() string {
	return c.reason
}

func (c RefundOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RefundOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RefundOrderCommand) setAmount(amount *kernel.Money) error {
	if amount != nil && !amount.IsPositive() {
		return errs.NewValueIsInvalidError("amount")
	}

	c.amount = amount
	return nil
}

func (c *RefundOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
