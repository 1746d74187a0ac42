package commands

import (
	"errors"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand represents a request to add a driver to the store's fleet.
// The driver id is the id of the driver's user account, so that the actor resolved from
// the driver's token identifies the driver.
//
// Example:
//
//	cmd, err := NewRegisterDriverCommand(userID, "Ana", 3, admin)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//
//	handler := NewRegisterDriverCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register driver: %w", err)
//	}
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	capacity int
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand validates that the id is set, the name is not empty and the
// capacity is positive.
func NewRegisterDriverCommand(driverID kernel.UUID, name string, capacity int, actor kernel.Actor) (RegisterDriverCommand, error) {
	command := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(driverID),
		command.setName(name),
		command.setCapacity(capacity),
		command.setActor(actor),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Capacity returns how many deliveries the driver carries at once.
func (c RegisterDriverCommand) Capacity() int {
	return c.capacity
}

func (c RegisterDriverCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RegisterDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return driver.ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unlimited")
	}

	c.capacity = capacity
	return nil
}

func (c *RegisterDriverCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

var ErrSetDriverShiftCommandIsNotConstructed = errors.New(
	"SetDriverShiftCommand must be created via NewSetDriverShiftCommand constructor",
)

// SetDriverShiftCommand starts or ends a driver's shift. Drivers off shift are not
// offered deliveries.
type SetDriverShiftCommand struct {
	driverID kernel.UUID
	active   bool
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetDriverShiftCommand(driverID kernel.UUID, active bool, actor kernel.Actor) (SetDriverShiftCommand, error) {
	if err := errors.Join(driverID.Validate(), actor.Validate()); err != nil {
		return SetDriverShiftCommand{}, err
	}

	return SetDriverShiftCommand{
		driverID: driverID,
		active:   active,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverShiftCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverShiftCommandIsNotConstructed)
}

func (c SetDriverShiftCommand) DriverID() kernel.UUID { return c.driverID }
func (c SetDriverShiftCommand) Active() bool          { return c.active }
func (c SetDriverShiftCommand) Actor() kernel.Actor   { return c.actor }
