package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand reports where the driver of a delivery is.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	location kernel.GeoPoint
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateDriverLocationCommand(
	orderID kernel.UUID, latitude, longitude float64, actor kernel.Actor,
) (UpdateDriverLocationCommand, error) {
	location, locationErr := kernel.NewGeoPoint(latitude, longitude)
	if err := errors.Join(orderID.Validate(), locationErr, actor.Validate()); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		orderID:  orderID,
		location: location,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

func (c UpdateDriverLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateDriverLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c UpdateDriverLocationCommand) Actor() kernel.Actor {
	return c.actor
}
