//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite runs the GORM repositories against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	admin    kernel.Actor
	customer kernel.Actor
	driver   kernel.Actor
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)

	suite.admin = suite.newActor(kernel.RoleAdmin)
	suite.customer = suite.newActor(kernel.RoleCustomer)
	suite.driver = suite.newActor(kernel.RoleDelivery)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, table := range postgres_adapter.Tables {
		suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx), "rollback after commit")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrder_RoundTripAndHistoryAppend() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	})
	suite.Empty(o.PendingHistory(), "commit marks the history persisted")

	suite.inTx(func(uow ports.UnitOfWork) {
		locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(locked.Transition(order.Confirmed, suite.admin, testNow.Add(time.Minute), order.RewardPolicy{}))
		suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	})

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), got.Number())
	suite.Equal(order.Confirmed, got.Status())
	suite.Equal("210.00", got.Total().String())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("ribeye", got.Items()[0].ProductID())
	history := got.History()
	suite.Require().Len(history, 2)
	suite.Equal(order.Pending, history[0].Status)
	suite.Equal(order.Confirmed, history[1].Status)
	suite.Require().NotNil(got.Address().Location())
	suite.InDelta(-34.6037, got.Address().Location().Latitude(), 1e-9)

	orders, err := suite.factory.Create().OrderRepository().ListByCustomer(ctx, suite.customer.ID())
	suite.Require().NoError(err)
	suite.Len(orders, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrder_DuplicateAndMissing() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	})

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	err := uow.OrderRepository().Add(ctx, o)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	msg, err := outbox.NewMessage(suite.customer.ID(), outbox.KindOrderPlaced, map[string]string{"number": o.Number()}, testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, msg))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertCount("outbox_messages", 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTracking_TimelineAndDriverListing() {
	ctx := context.Background()
	o := suite.newOrder()
	t, err := tracking.NewTracking(o.ID(), testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(t.AssignDriver(suite.driver.ID(), suite.admin, testNow))

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
		suite.Require().NoError(uow.TrackingRepository().Add(ctx, t))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		locked, err := uow.TrackingRepository().GetForUpdate(ctx, o.ID())
		suite.Require().NoError(err)
		_, err = locked.Advance(suite.driver, testNow.Add(time.Minute))
		suite.Require().NoError(err)
		point, err := kernel.NewGeoPoint(-34.5937, -58.3816)
		suite.Require().NoError(err)
		suite.Require().NoError(locked.UpdateLocation(point, suite.driver, testNow.Add(2*time.Minute)))
		suite.Require().NoError(uow.TrackingRepository().Update(ctx, locked))
	})

	got, err := suite.factory.Create().TrackingRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(tracking.Ready, got.Status())
	suite.True(got.IsAssignedTo(suite.driver.ID()))
	suite.Len(got.Timeline(), 2)
	suite.Require().NotNil(got.CurrentLocation())
	suite.InDelta(-34.5937, got.CurrentLocation().Latitude(), 1e-9)

	open, err := suite.factory.Create().TrackingRepository().ListByDriver(ctx, suite.driver.ID(), true)
	suite.Require().NoError(err)
	suite.Len(open, 1)
	other, err := suite.factory.Create().TrackingRepository().ListByDriver(ctx, kernel.NewUUID(), false)
	suite.Require().NoError(err)
	suite.Empty(other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLedger_LazyAccountAndAppend() {
	ctx := context.Background()
	customerID := suite.customer.ID()

	account, err := suite.factory.Create().LedgerRepository().Get(ctx, customerID, testNow)
	suite.Require().NoError(err)
	suite.True(account.Balance().IsZero())
	suite.assertCount("ledger_accounts", 0)

	for _, amount := range []string{"40.00", "60.00"} {
		suite.inTx(func(uow ports.UnitOfWork) {
			locked, err := uow.LedgerRepository().GetForUpdate(ctx, customerID, testNow)
			suite.Require().NoError(err)
			_, err = locked.Credit(kernel.MustMoney(amount), ledger.TypeTopUp, "wallet top-up", "", testNow)
			suite.Require().NoError(err)
			suite.Require().NoError(locked.AwardLoyaltyPoints(10))
			suite.Require().NoError(uow.LedgerRepository().Save(ctx, locked))
		})
	}

	got, err := suite.factory.Create().LedgerRepository().Get(ctx, customerID, testNow)
	suite.Require().NoError(err)
	suite.Equal("100.00", got.Balance().String())
	suite.Equal(int64(20), got.LoyaltyPoints())
	suite.Equal(int64(20), got.LoyaltyLifetimeEarned())
	suite.Require().Len(got.Transactions(), 2)
	suite.Equal("40.00", got.Transactions()[0].Amount.String())
	suite.assertCount("ledger_transactions", 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLedger_GetForUpdateSerializesWriters() {
	ctx := context.Background()
	customerID := suite.customer.ID()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	account, err := first.LedgerRepository().GetForUpdate(ctx, customerID, testNow)
	suite.Require().NoError(err)

	acquired := make(chan *ledger.Account, 1)
	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	go func() {
		locked, lockErr := second.LedgerRepository().GetForUpdate(ctx, customerID, testNow)
		if lockErr != nil {
			acquired <- nil
			return
		}
		acquired <- locked
	}()

	select {
	case <-acquired:
		suite.FailNow("second writer must wait for the first")
	case <-time.After(300 * time.Millisecond):
	}

	_, err = account.Credit(kernel.MustMoney("25.00"), ledger.TypeTopUp, "wallet top-up", "", testNow)
	suite.Require().NoError(err)
	suite.Require().NoError(first.LedgerRepository().Save(ctx, account))
	suite.Require().NoError(first.Commit(ctx))

	select {
	case locked := <-acquired:
		suite.Require().NotNil(locked)
		suite.Equal("25.00", locked.Balance().String())
	case <-time.After(5 * time.Second):
		suite.FailNow("second writer never acquired the lock")
	}
	suite.Require().NoError(second.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPromoCode_UsageCounter() {
	ctx := context.Background()
	maxUses := 2
	code, err := promo.NewPromoCode(promo.Terms{
		Code:     " spring10 ",
		Discount: decimal.NewFromInt(10),
		Type:     promo.Percent,
		MaxUses:  &maxUses,
		Enabled:  true,
	})
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.PromoCodeRepository().Add(ctx, code))
	})
	suite.inTx(func(uow ports.UnitOfWork) {
		locked, err := uow.PromoCodeRepository().GetForUpdate(ctx, "spring10")
		suite.Require().NoError(err)
		suite.Require().NoError(locked.Consume(testNow))
		suite.Require().NoError(uow.PromoCodeRepository().Update(ctx, locked))
	})

	got, err := suite.factory.Create().PromoCodeRepository().Get(ctx, "Spring10")
	suite.Require().NoError(err)
	suite.Equal("SPRING10", got.Code())
	suite.Equal(1, got.UsedCount())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().ErrorIs(uow.PromoCodeRepository().Add(ctx, code), errs.ErrValueIsInvalid)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().PromoCodeRepository().Get(ctx, "NOPE")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDriver_ShiftAndLocation() {
	ctx := context.Background()
	d, err := driver.NewDriver(suite.driver.ID(), "Ana", 3)
	suite.Require().NoError(err)
	d.Activate()

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DriverRepository().Add(ctx, d))
	})

	point, err := kernel.NewGeoPoint(-34.6, -58.38)
	suite.Require().NoError(err)
	suite.Require().NoError(d.ReportLocation(point))
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DriverRepository().Update(ctx, d))
	})

	active, err := suite.factory.Create().DriverRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Require().NotNil(active[0].Location())
	suite.InDelta(-58.38, active[0].Location().Longitude(), 1e-9)

	d.Deactivate()
	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DriverRepository().Update(ctx, d))
	})
	active, err = suite.factory.Create().DriverRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_LockedMessagesAreSkipped() {
	ctx := context.Background()
	for i := range 3 {
		msg, err := outbox.NewMessage(suite.customer.ID(), outbox.KindOrderStatusChanged,
			map[string]int{"step": i}, testNow.Add(time.Duration(i)*time.Second))
		suite.Require().NoError(err)
		suite.inTx(func(uow ports.UnitOfWork) {
			suite.Require().NoError(uow.OutboxRepository().Add(ctx, msg))
		})
	}

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	batch, err := first.OutboxRepository().GetPendingForUpdate(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(batch, 2)
	suite.JSONEq(`{"step":0}`, string(batch[0].Payload))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	rest, err := second.OutboxRepository().GetPendingForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1, "rows locked by the first relay are skipped")
	suite.Require().NoError(second.Rollback(ctx))

	for _, m := range batch {
		m.MarkSent(testNow.Add(time.Minute))
		suite.Require().NoError(first.OutboxRepository().Update(ctx, m))
	}
	suite.Require().NoError(first.Commit(ctx))

	third := suite.factory.Create()
	suite.Require().NoError(third.Begin(ctx))
	pending, err := third.OutboxRepository().GetPendingForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
	suite.Require().NoError(third.Rollback(ctx))
}

// TestCommands_PlaceOrderThroughPostgres drives a command handler end to end.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommands_PlaceOrderThroughPostgres() {
	ctx := context.Background()
	policy := commands.StorePolicy{
		VATRate:     decimal.Zero,
		DeliveryFee: kernel.MustMoney("4.50"),
		PointValue:  decimal.RequireFromString("0.10"),
	}
	clock := func() time.Time { return testNow }

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, suite.customer, suite.customer.ID(),
		[]commands.OrderLine{{
			ProductID: "ribeye",
			Name:      "Ribeye steak",
			Quantity:  decimal.NewFromInt(2),
			UnitPrice: kernel.MustMoney("20.00"),
		}}, "1 Butcher Lane", nil, "cod", "", "")
	suite.Require().NoError(err)
	suite.Require().NoError(commands.NewCreateOrderCommandHandler(suite.factory, policy, clock).Handle(ctx, cmd))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("44.50", got.Total().String())
	suite.assertCount("outbox_messages", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) inTx(fn func(uow ports.UnitOfWork)) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	fn(uow)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) newActor(role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return actor
}

// newOrder builds a pending cash order: two ribeyes and a kilo of chorizo, 210.00.
func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	ribeye, err := order.NewItem("ribeye", "Ribeye steak", decimal.NewFromInt(2), kernel.MustMoney("80.00"))
	suite.Require().NoError(err)
	chorizo, err := order.NewItem("chorizo", "Chorizo", decimal.NewFromInt(1), kernel.MustMoney("50.00"))
	suite.Require().NoError(err)
	location, err := kernel.NewGeoPoint(-34.6037, -58.3816)
	suite.Require().NoError(err)
	address, err := order.NewAddress("1 Butcher Lane", &location)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), order.Checkout{
		CustomerID:    suite.customer.ID(),
		Items:         []order.Item{ribeye, chorizo},
		Discount:      kernel.ZeroMoney(),
		DeliveryFee:   kernel.ZeroMoney(),
		VATRate:       decimal.Zero,
		PaymentMethod: order.PaymentCOD,
		Address:       address,
	}, suite.customer, testNow)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
