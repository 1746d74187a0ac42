package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

type fixture struct {
	t          *testing.T
	ctx        context.Context
	uowFactory *memory.UnitOfWorkFactory
	policy     commands.StorePolicy

	admin    kernel.Actor
	staff    kernel.Actor
	customer kernel.Actor
	driver   kernel.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:          t,
		ctx:        t.Context(),
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		policy: commands.StorePolicy{
			VATRate:     decimal.Zero,
			DeliveryFee: kernel.MustMoney("4.50"),
			Rewards: order.RewardPolicy{
				CashbackEnabled: true,
				CashbackPercent: decimal.NewFromInt(5),
				PointsPerUnit:   decimal.NewFromInt(1),
			},
			PointValue: decimal.RequireFromString("0.10"),
		},
		admin:    newActor(t, kernel.RoleAdmin),
		staff:    newActor(t, kernel.RoleStaff),
		customer: newActor(t, kernel.RoleCustomer),
		driver:   newActor(t, kernel.RoleDelivery),
	}

	register, err := commands.NewRegisterDriverCommand(f.driver.ID(), "Ana", 5, f.admin)
	require.NoError(t, err)
	require.NoError(t, commands.NewDriverCommandHandler(f.uowFactory).HandleRegister(f.ctx, register))
	return f
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

// placeOrder checks out quantity kilos of ribeye at 20.00 to an address with coordinates.
func (f *fixture) placeOrder(quantity int64) kernel.UUID {
	f.t.Helper()
	destination, err := kernel.NewGeoPoint(-34.6037, -58.3816)
	require.NoError(f.t, err)
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, f.customer, f.customer.ID(), []commands.OrderLine{{
		ProductID: "ribeye",
		Name:      "Ribeye",
		Quantity:  decimal.NewFromInt(quantity),
		UnitPrice: kernel.MustMoney("20.00"),
	}}, "Av. de Mayo 500", &destination, "cod", "", "")
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd))
	return id
}

func (f *fixture) changeStatus(orderID kernel.UUID, status string) {
	f.t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, f.staff)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewChangeOrderStatusCommandHandler(f.uowFactory, nil, f.policy, fixedClock, nil).Handle(f.ctx, cmd))
}

// dispatch confirms the order and hands it to the fixture's driver.
func (f *fixture) dispatch(orderID kernel.UUID) {
	f.t.Helper()
	f.changeStatus(orderID, "confirmed")
	driverID := f.driver.ID()
	assign, err := commands.NewAssignDriverCommand(orderID, &driverID, f.admin)
	require.NoError(f.t, err)
	_, err = commands.NewAssignDriverCommandHandler(f.uowFactory, fixedClock).Handle(f.ctx, assign)
	require.NoError(f.t, err)
}

func (f *fixture) reportLocation(orderID kernel.UUID, lat, lon float64) {
	f.t.Helper()
	cmd, err := commands.NewUpdateDriverLocationCommand(orderID, lat, lon, f.driver)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewUpdateDriverLocationCommandHandler(f.uowFactory, fixedClock).Handle(f.ctx, cmd))
}

func (f *fixture) topUp(amount string) {
	f.t.Helper()
	cmd, err := commands.NewTopUpAccountCommand(f.customer.ID(), kernel.MustMoney(amount), "", f.customer)
	require.NoError(f.t, err)
	_, err = commands.NewTopUpAccountCommandHandler(f.uowFactory, fixedClock).Handle(f.ctx, cmd)
	require.NoError(f.t, err)
}
