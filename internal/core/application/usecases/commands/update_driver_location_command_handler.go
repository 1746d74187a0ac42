package commands

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"
)

// UpdateDriverLocationCommandHandler stores the position on the delivery tracking and on
// the driver, so that the dispatcher can rank drivers by distance.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewUpdateDriverLocationCommandHandler(uowFactory UoWFactory, clock Clock) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h UpdateDriverLocationCommandHandler) Handle(ctx context.Context, command UpdateDriverLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TrackingRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = t.UpdateLocation(command.Location(), command.Actor(), h.clock()); err != nil {
		return err
	}

	if err = uow.TrackingRepository().Update(ctx, t); err != nil {
		return err
	}

	d, err := uow.DriverRepository().Get(ctx, command.Actor().ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	default:
		if err = d.ReportLocation(command.Location()); err != nil {
			return err
		}
		if err = uow.DriverRepository().Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
