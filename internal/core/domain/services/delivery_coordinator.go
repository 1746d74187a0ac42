package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"
)

// ErrTrackingDoesNotMatchOrder is returned when a tracking is coordinated with another order.
var ErrTrackingDoesNotMatchOrder = errors.New("tracking does not belong to the order")

// DeliveryCoordinator keeps an order and its delivery tracking causally ordered.
//
// Business rules:
//   - Tracking never progresses once the order is cancelled or refunded
//   - Picking the order up moves a processing or ready_for_pickup order out for delivery
//   - Reaching delivered on the tracking delivers the order in the same step; an order
//     already delivered without its tracking is refused
//   - If the order side fails, the tracking step fails too and nothing changes
//
// The coordinator works on copies. On success it returns the updated order and tracking,
// which the caller persists together in one unit of work; the inputs are never modified.
type DeliveryCoordinator struct {
	policy order.RewardPolicy
}

func NewDeliveryCoordinator(policy order.RewardPolicy) DeliveryCoordinator {
	return DeliveryCoordinator{policy: policy}
}

// Advance moves the tracking one step and applies the coupled order transition, if any.
//
// Returns:
//   - the updated order and tracking
//   - *errs.UnauthorizedError, *errs.NoFurtherTransitionError from the tracking
//   - *errs.IllegalTransitionError when the order state forbids the step
func (c DeliveryCoordinator) Advance(
	o *order.Order, t *tracking.Tracking, actor kernel.Actor, now time.Time,
) (*order.Order, *tracking.Tracking, error) {
	if err := c.check(o, t); err != nil {
		return nil, nil, err
	}

	tc := t.Clone()
	next, err := tc.Advance(actor, now)
	if err != nil {
		return nil, nil, err
	}
	return c.couple(o, tc, t.Status(), next, actor, now)
}

// Complete finishes the delivery in one call and delivers the order.
func (c DeliveryCoordinator) Complete(
	o *order.Order, t *tracking.Tracking, notes string, actor kernel.Actor, now time.Time,
) (*order.Order, *tracking.Tracking, error) {
	if err := c.check(o, t); err != nil {
		return nil, nil, err
	}

	tc := t.Clone()
	if err := tc.Complete(notes, actor, now); err != nil {
		return nil, nil, err
	}
	return c.couple(o, tc, t.Status(), tracking.Delivered, actor, now)
}

func (c DeliveryCoordinator) check(o *order.Order, t *tracking.Tracking) error {
	if err := errors.Join(o.Validate(), t.Validate()); err != nil {
		return err
	}
	if !t.OrderID().IsEqual(o.ID()) {
		return ErrTrackingDoesNotMatchOrder
	}
	return nil
}

func (c DeliveryCoordinator) couple(
	o *order.Order, tc *tracking.Tracking, from, next tracking.Status, actor kernel.Actor, now time.Time,
) (*order.Order, *tracking.Tracking, error) {
	if s := o.Status(); s == order.Cancelled || s == order.Refunded {
		return nil, nil, errs.NewIllegalTransitionErrorWithCause("tracking", from.String(), next.String(),
			fmt.Errorf("order %s is %s", o.Number(), s))
	}

	oc := o.Clone()
	var err error
	switch next {
	case tracking.PickedUp:
		switch oc.Status() {
		case order.Processing, order.ReadyForPickup:
			err = oc.Transition(order.OutForDelivery, actor, now, c.policy)
		case order.OutForDelivery:
		default:
			err = errs.NewIllegalTransitionError("order", oc.Status().String(), order.OutForDelivery.String())
		}
	case tracking.Delivered:
		err = oc.Transition(order.Delivered, actor, now, c.policy)
	default:
	}
	if err != nil {
		return nil, nil, err
	}

	return oc, tc, nil
}
