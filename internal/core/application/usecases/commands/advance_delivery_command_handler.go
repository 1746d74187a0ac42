package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/domain/services"
)

// deliveryStep is one coordinated change of an order and its tracking.
type deliveryStep func(o *order.Order, t *tracking.Tracking, now time.Time) (*order.Order, *tracking.Tracking, error)

// DeliveryCommandHandler drives deliveries for drivers. Every step locks the order and
// then its tracking, lets services.DeliveryCoordinator move both, and commits them
// together with the ledger rewards and notifications the step produced. A step that
// fails leaves both entities as they were.
type DeliveryCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	clock       Clock
}

func NewDeliveryCommandHandler(uowFactory UoWFactory, policy StorePolicy, clock Clock) DeliveryCommandHandler {
	return DeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(policy.Rewards),
		clock:       clock,
	}
}

// HandleAdvance moves the delivery one step. Picking the order up sends the order
// out for delivery; reaching Delivered delivers it.
func (h DeliveryCommandHandler) HandleAdvance(ctx context.Context, command AdvanceDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.apply(ctx, command.OrderID(), func(o *order.Order, t *tracking.Tracking, now time.Time) (*order.Order, *tracking.Tracking, error) {
		return h.coordinator.Advance(o, t, command.Actor(), now)
	})
}

// HandleComplete delivers a picked-up order in one step.
func (h DeliveryCommandHandler) HandleComplete(ctx context.Context, command CompleteDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.apply(ctx, command.OrderID(), func(o *order.Order, t *tracking.Tracking, now time.Time) (*order.Order, *tracking.Tracking, error) {
		return h.coordinator.Complete(o, t, command.Notes(), command.Actor(), now)
	})
}

func (h DeliveryCommandHandler) apply(ctx context.Context, orderID kernel.UUID, step deliveryStep) error {
	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	t, err := uow.TrackingRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	o, t, err = step(o, t, now)
	if err != nil {
		return err
	}

	effects := newSideEffects(uow, now)
	if err = effects.applyOrderEvents(ctx, o); err != nil {
		return err
	}
	if err = effects.applyTrackingEvents(t, o.CustomerID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.TrackingRepository().Update(ctx, t); err != nil {
		return err
	}

	if err = effects.flush(ctx); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
