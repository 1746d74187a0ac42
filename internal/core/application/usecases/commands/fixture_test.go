package commands_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/core/domain/model/tracking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// fixture wires the handlers to an in-memory store, the way the composition root wires
// them to postgres.
type fixture struct {
	t          *testing.T
	ctx        context.Context
	uowFactory *memory.UnitOfWorkFactory
	gateway    *MockPaymentGateway
	policy     commands.StorePolicy
	logs       *bytes.Buffer
	logger     *slog.Logger

	admin    kernel.Actor
	staff    kernel.Actor
	customer kernel.Actor
	driver   kernel.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logs := new(bytes.Buffer)
	return &fixture{
		t:          t,
		ctx:        t.Context(),
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		gateway:    new(MockPaymentGateway),
		logs:       logs,
		logger:     slog.New(slog.NewTextHandler(logs, nil)),
		policy: commands.StorePolicy{
			VATRate:     decimal.Zero,
			DeliveryFee: kernel.ZeroMoney(),
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
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func brisket(quantity int64) commands.OrderLine {
	return commands.OrderLine{
		ProductID: "brisket",
		Name:      "Beef brisket",
		Quantity:  decimal.NewFromInt(quantity),
		UnitPrice: kernel.MustMoney("50.00"),
	}
}

// placeOrder checks out two kilos of brisket, 100.00 before fees.
func (f *fixture) placeOrder(method, reference, promoCode string) kernel.UUID {
	f.t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, f.customer, f.customer.ID(),
		[]commands.OrderLine{brisket(2)}, "1 Butcher Lane", nil, method, reference, promoCode)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd))
	return id
}

func (f *fixture) changeStatus(orderID kernel.UUID, status string, actor kernel.Actor) error {
	f.t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, actor)
	require.NoError(f.t, err)
	return commands.NewChangeOrderStatusCommandHandler(f.uowFactory, f.gateway, f.policy, fixedClock, f.logger).Handle(f.ctx, cmd)
}

func (f *fixture) topUp(customerID kernel.UUID, amount string) {
	f.t.Helper()
	cmd, err := commands.NewTopUpAccountCommand(customerID, kernel.MustMoney(amount), "", f.staff)
	require.NoError(f.t, err)
	_, err = commands.NewTopUpAccountCommandHandler(f.uowFactory, fixedClock).Handle(f.ctx, cmd)
	require.NoError(f.t, err)
}

func (f *fixture) addPromo(terms promo.Terms) {
	f.t.Helper()
	cmd, err := commands.NewCreatePromoCodeCommand(terms, f.admin)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewCreatePromoCodeCommandHandler(f.uowFactory).Handle(f.ctx, cmd))
}

func (f *fixture) registerDriver(actor kernel.Actor, capacity int) {
	f.t.Helper()
	cmd, err := commands.NewRegisterDriverCommand(actor.ID(), "Ana", capacity, f.admin)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewDriverCommandHandler(f.uowFactory).HandleRegister(f.ctx, cmd))
}

func (f *fixture) assignDriver(orderID kernel.UUID, driverID *kernel.UUID) (kernel.UUID, error) {
	f.t.Helper()
	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, f.admin)
	require.NoError(f.t, err)
	return commands.NewAssignDriverCommandHandler(f.uowFactory, fixedClock).Handle(f.ctx, cmd)
}

func (f *fixture) advance(orderID kernel.UUID, actor kernel.Actor) error {
	f.t.Helper()
	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, actor)
	require.NoError(f.t, err)
	return commands.NewDeliveryCommandHandler(f.uowFactory, f.policy, fixedClock).HandleAdvance(f.ctx, cmd)
}

// readyForPickup confirms the order, starts processing, assigns the fixture's driver and
// advances the tracking to Ready.
func (f *fixture) readyForPickup(orderID kernel.UUID) {
	f.t.Helper()
	require.NoError(f.t, f.changeStatus(orderID, "confirmed", f.staff))
	require.NoError(f.t, f.changeStatus(orderID, "processing", f.staff))
	driverID := f.driver.ID()
	_, err := f.assignDriver(orderID, &driverID)
	require.NoError(f.t, err)
	require.NoError(f.t, f.advance(orderID, f.driver))
}

// deliver runs the whole delivery of a placed order with the fixture's driver.
func (f *fixture) deliver(orderID kernel.UUID) {
	f.t.Helper()
	f.readyForPickup(orderID)
	for range 4 {
		require.NoError(f.t, f.advance(orderID, f.driver))
	}
	require.Equal(f.t, order.Delivered, f.order(orderID).Status())
}

func (f *fixture) order(id kernel.UUID) *order.Order {
	f.t.Helper()
	o, err := f.uowFactory.Create().OrderRepository().Get(f.ctx, id)
	require.NoError(f.t, err)
	return o
}

func (f *fixture) tracking(orderID kernel.UUID) *tracking.Tracking {
	f.t.Helper()
	t, err := f.uowFactory.Create().TrackingRepository().Get(f.ctx, orderID)
	require.NoError(f.t, err)
	return t
}

func (f *fixture) account(customerID kernel.UUID) *ledger.Account {
	f.t.Helper()
	a, err := f.uowFactory.Create().LedgerRepository().Get(f.ctx, customerID, testNow)
	require.NoError(f.t, err)
	return a
}

func (f *fixture) promo(code string) *promo.PromoCode {
	f.t.Helper()
	p, err := f.uowFactory.Create().PromoCodeRepository().Get(f.ctx, code)
	require.NoError(f.t, err)
	return p
}

// pendingKinds lists the kinds of all unsent outbox messages without sending them.
func (f *fixture) pendingKinds() []outbox.Kind {
	f.t.Helper()
	uow := f.uowFactory.Create()
	require.NoError(f.t, uow.Begin(f.ctx))
	defer func() { _ = uow.Rollback(f.ctx) }()

	messages, err := uow.OutboxRepository().GetPendingForUpdate(f.ctx, 1000)
	require.NoError(f.t, err)
	kinds := make([]outbox.Kind, 0, len(messages))
	for _, m := range messages {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}

// requireLedgerConsistent checks that the balance equals the sum of the transactions.
func requireLedgerConsistent(t *testing.T, account *ledger.Account) {
	t.Helper()
	sum := kernel.ZeroMoney()
	for _, tx := range account.Transactions() {
		sum = sum.Add(tx.Amount)
	}
	require.True(t, sum.Equal(account.Balance()), "balance %s != sum %s", account.Balance(), sum)
	require.False(t, account.Balance().IsNegative())
}
