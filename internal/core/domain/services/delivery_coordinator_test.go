package services_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	order    *order.Order
	tracking *tracking.Tracking
	driver   kernel.Actor
	admin    kernel.Actor
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

// newFixture builds a confirmed COD order with an assigned tracking, then moves the
// order to orderStatus and the tracking to trackingStatus without coordination.
func newFixture(t *testing.T, orderStatus order.Status, trackingStatus tracking.Status) fixture {
	t.Helper()
	customer := newActor(t, kernel.RoleCustomer)
	admin := newActor(t, kernel.RoleAdmin)
	driver := newActor(t, kernel.RoleDelivery)

	item, err := order.NewItem("lamb-chops", "Lamb chops", decimal.RequireFromString("0.75"), kernel.MustMoney("24.00"))
	require.NoError(t, err)
	address, err := order.NewAddress("1 Butcher Row", nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Checkout{
		CustomerID:    customer.ID(),
		Items:         []order.Item{item},
		PaymentMethod: order.PaymentCOD,
		Address:       address,
	}, customer, now)
	require.NoError(t, err)

	for _, next := range []order.Status{order.Confirmed, order.Processing, order.OutForDelivery} {
		if o.Status() == orderStatus {
			break
		}
		require.NoError(t, o.Transition(next, admin, now, order.RewardPolicy{}))
	}
	require.Equal(t, orderStatus, o.Status())

	tr, err := tracking.NewTracking(o.ID(), now)
	require.NoError(t, err)
	require.NoError(t, tr.AssignDriver(driver.ID(), admin, now))
	for tr.Status() != trackingStatus {
		_, err = tr.Advance(driver, now)
		require.NoError(t, err)
	}

	o.ClearDomainEvents()
	tr.ClearDomainEvents()
	return fixture{order: o, tracking: tr, driver: driver, admin: admin}
}

func TestDeliveryCoordinator_Advance(t *testing.T) {
	coordinator := services.NewDeliveryCoordinator(order.RewardPolicy{})

	t.Run("should deliver the order when the tracking reaches delivered", func(t *testing.T) {
		// Given
		f := newFixture(t, order.OutForDelivery, tracking.InTransit)

		// When
		o1, t1, err := coordinator.Advance(f.order, f.tracking, f.driver, now)
		require.NoError(t, err)
		o2, t2, err := coordinator.Advance(o1, t1, f.driver, now)

		// Then
		require.NoError(t, err)
		assert.Equal(t, tracking.Nearby, t1.Status())
		assert.Equal(t, order.OutForDelivery, o1.Status())
		assert.Equal(t, tracking.Delivered, t2.Status())
		assert.Equal(t, order.Delivered, o2.Status())
		assert.Equal(t, order.PaymentCaptured, o2.PaymentStatus())
	})

	t.Run("should refuse to progress once the order was cancelled", func(t *testing.T) {
		// Given
		f := newFixture(t, order.OutForDelivery, tracking.PickedUp)
		require.NoError(t, f.order.Transition(order.Cancelled, f.admin, now, order.RewardPolicy{}))
		timeline := len(f.tracking.Timeline())

		// When
		o, tr, err := coordinator.Advance(f.order, f.tracking, f.driver, now)

		// Then
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Nil(t, o)
		assert.Nil(t, tr)
		assert.Equal(t, tracking.PickedUp, f.tracking.Status())
		assert.Len(t, f.tracking.Timeline(), timeline)
		assert.Equal(t, order.Cancelled, f.order.Status())
	})

	t.Run("should move a processing order out for delivery on pickup", func(t *testing.T) {
		f := newFixture(t, order.Processing, tracking.Ready)

		o, tr, err := coordinator.Advance(f.order, f.tracking, f.driver, now)

		require.NoError(t, err)
		assert.Equal(t, tracking.PickedUp, tr.Status())
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Equal(t, order.Processing, f.order.Status(), "input order must not change")
	})

	t.Run("should refuse pickup of an order that is not prepared yet", func(t *testing.T) {
		f := newFixture(t, order.Confirmed, tracking.Ready)

		_, _, err := coordinator.Advance(f.order, f.tracking, f.driver, now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, tracking.Ready, f.tracking.Status())
	})

	t.Run("should not touch the order for intermediate steps", func(t *testing.T) {
		f := newFixture(t, order.OutForDelivery, tracking.PickedUp)

		o, tr, err := coordinator.Advance(f.order, f.tracking, f.driver, now)

		require.NoError(t, err)
		assert.Equal(t, tracking.InTransit, tr.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should report unauthorized before checking the order", func(t *testing.T) {
		f := newFixture(t, order.OutForDelivery, tracking.Nearby)

		_, _, err := coordinator.Advance(f.order, f.tracking, newActor(t, kernel.RoleDelivery), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should reject a tracking of another order", func(t *testing.T) {
		f := newFixture(t, order.OutForDelivery, tracking.Nearby)
		other := newFixture(t, order.OutForDelivery, tracking.Nearby)

		_, _, err := coordinator.Advance(f.order, other.tracking, other.driver, now)

		require.ErrorIs(t, err, services.ErrTrackingDoesNotMatchOrder)
	})
}

func TestDeliveryCoordinator_Complete(t *testing.T) {
	policy := order.RewardPolicy{CashbackEnabled: true, CashbackPercent: decimal.NewFromInt(10)}
	coordinator := services.NewDeliveryCoordinator(policy)

	t.Run("should complete from picked up and apply the reward policy", func(t *testing.T) {
		f := newFixture(t, order.OutForDelivery, tracking.PickedUp)

		o, tr, err := coordinator.Complete(f.order, f.tracking, "handed over", f.driver, now)

		require.NoError(t, err)
		assert.Equal(t, tracking.Delivered, tr.Status())
		assert.Equal(t, order.Delivered, o.Status())
		var cashback []order.CashbackEarned
		for _, e := range o.DomainEvents() {
			if c, ok := e.(order.CashbackEarned); ok {
				cashback = append(cashback, c)
			}
		}
		require.Len(t, cashback, 1)
		assert.Equal(t, "1.80", cashback[0].Amount.String())
	})

	t.Run("should refuse an order delivered ahead of its tracking", func(t *testing.T) {
		f := newFixture(t, order.OutForDelivery, tracking.InTransit)
		require.NoError(t, f.order.Transition(order.Delivered, f.admin, now, order.RewardPolicy{}))
		f.order.ClearDomainEvents()

		o, tr, err := coordinator.Complete(f.order, f.tracking, "", f.driver, now)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Nil(t, o)
		assert.Nil(t, tr)
		assert.Equal(t, tracking.InTransit, f.tracking.Status())
	})
}
