package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrCapturePaymentCommandIsNotConstructed = errors.New(
	"CapturePaymentCommand must be created via NewCapturePaymentCommand constructor",
)

// CapturePaymentCommand takes the money for an order. Card payments are captured through
// the gateway; for other methods staff confirm that the money arrived, optionally quoting
// a reference such as the bank transfer id.
type CapturePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reference string
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewCapturePaymentCommand(orderID kernel.UUID, reference string, actor kernel.Actor) (CapturePaymentCommand, error) {
	cmd := CapturePaymentCommand{
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return CapturePaymentCommand{}, err
	}

	return cmd, nil
}

func (c CapturePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCapturePaymentCommandIsNotConstructed)
}

func (c CapturePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CapturePaymentCommand) Reference() string {
	return c.reference
}

func (c CapturePaymentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CapturePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CapturePaymentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
