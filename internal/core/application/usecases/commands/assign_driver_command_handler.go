package commands

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// AssignDriverCommandHandler assigns or reassigns the driver of an order's delivery.
//
// When the command names a driver, that driver must be active and below capacity.
// Otherwise services.DriverDispatcher picks among the active drivers, preferring the one
// nearest to the delivery address.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory, SystemClock)
//	driverID, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // every driver is busy
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DriverDispatcher
	clock      Clock
}

func NewAssignDriverCommandHandler(uowFactory UoWFactory, clock Clock) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDriverDispatcher(),
		clock:      clock,
	}
}

// Handle returns the id of the assigned driver.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, command AssignDriverCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	actor := command.Actor()
	if !actor.IsAdmin() {
		return kernel.UUID{}, errs.NewUnauthorizedError(actor.ID().String(), "assign a driver")
	}

	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	t, err := uow.TrackingRepository().GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if o.IsTerminal() {
		return kernel.UUID{}, errs.NewIllegalTransitionErrorWithCause("tracking", t.Status().String(), t.Status().String(),
			fmt.Errorf("order %s is %s", o.Number(), o.Status()))
	}

	var chosen *driver.Driver
	if id := command.DriverID(); id != nil {
		chosen, err = h.requested(ctx, uow, *id, command.OrderID())
	} else {
		chosen, err = h.dispatch(ctx, uow, o.Address().Location(), command.OrderID())
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = t.AssignDriver(chosen.ID(), actor, now); err != nil {
		return kernel.UUID{}, err
	}

	effects := newSideEffects(uow, now)
	if err = effects.applyTrackingEvents(t, o.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.TrackingRepository().Update(ctx, t); err != nil {
		return kernel.UUID{}, err
	}

	if err = effects.flush(ctx); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return chosen.ID(), nil
}

func (h AssignDriverCommandHandler) requested(
	ctx context.Context, uow ports.UnitOfWork, driverID, orderID kernel.UUID,
) (*driver.Driver, error) {
	d, err := uow.DriverRepository().Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	open, err := openDeliveries(ctx, uow, driverID, orderID)
	if err != nil {
		return nil, err
	}
	if err = d.CanTakeDelivery(open); err != nil {
		return nil, err
	}
	return d, nil
}

func (h AssignDriverCommandHandler) dispatch(
	ctx context.Context, uow ports.UnitOfWork, destination *kernel.GeoPoint, orderID kernel.UUID,
) (*driver.Driver, error) {
	drivers, err := uow.DriverRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]services.DriverCandidate, 0, len(drivers))
	for _, d := range drivers {
		open, err := openDeliveries(ctx, uow, d.ID(), orderID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, services.DriverCandidate{Driver: d, OpenDeliveries: open})
	}

	return h.dispatcher.Dispatch(destination, candidates)
}

// openDeliveries counts the driver's undelivered trackings other than orderID's own.
func openDeliveries(ctx context.Context, uow ports.UnitOfWork, driverID, orderID kernel.UUID) (int, error) {
	open, err := uow.TrackingRepository().ListByDriver(ctx, driverID, true)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range open {
		if !t.OrderID().IsEqual(orderID) {
			n++
		}
	}
	return n, nil
}
