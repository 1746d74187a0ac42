package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
		"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
	)
	ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
		"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
	)
)

// AdvanceDeliveryCommand moves a delivery one step forward on behalf of its driver.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdvanceDeliveryCommand(orderID kernel.UUID, actor kernel.Actor) (AdvanceDeliveryCommand, error) {
	cmd := AdvanceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return AdvanceDeliveryCommand{}, err
	}
	cmd.orderID, cmd.actor = orderID, actor

	return cmd, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}

// CompleteDeliveryCommand marks a picked-up delivery as handed over, with optional notes
// from the driver.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	notes   string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(orderID kernel.UUID, notes string, actor kernel.Actor) (CompleteDeliveryCommand, error) {
	cmd := CompleteDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	cmd.orderID, cmd.actor = orderID, actor

	return cmd, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

func (c CompleteDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
