package commands

import (
	"context"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/pkg/errs"
)

// DriverCommandHandler manages the fleet: registering drivers and switching their
// shifts. Admins only.
//
// Example:
//
//	handler := NewDriverCommandHandler(uowFactory)
//	cmd, _ := NewRegisterDriverCommand(userID, "Ana", 3, admin)
//
//	if err := handler.HandleRegister(ctx, cmd); err != nil {
//	    return fmt.Errorf("driver registration failed: %w", err)
//	}
type DriverCommandHandler struct {
	uowFactory UoWFactory
}

func NewDriverCommandHandler(uowFactory UoWFactory) DriverCommandHandler {
	return DriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// HandleRegister creates the driver, active and without a known position.
func (h DriverCommandHandler) HandleRegister(ctx context.Context, cmd RegisterDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if actor := cmd.Actor(); !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.ID().String(), "register a driver")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	driverEntity, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Capacity())
	if err != nil {
		return err
	}

	if err = driverRepo.Add(ctx, driverEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleShift activates or deactivates the driver.
func (h DriverCommandHandler) HandleShift(ctx context.Context, cmd SetDriverShiftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if actor := cmd.Actor(); !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.ID().String(), "change a driver's shift")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	driverEntity, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if cmd.Active() {
		driverEntity.Activate()
	} else {
		driverEntity.Deactivate()
	}

	if err = driverRepo.Update(ctx, driverEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
