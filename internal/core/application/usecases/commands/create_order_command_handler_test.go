package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	f := newFixture(t)

	id := f.placeOrder("card", "auth-1", "")

	o := f.order(id)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, order.PaymentAuthorized, o.PaymentStatus())
	assert.Equal(t, "100.00", o.Total().String())
	assert.Len(t, o.History(), 1)
	assert.Equal(t, []outbox.Kind{outbox.KindOrderPlaced}, f.pendingKinds())
}

func TestCreateOrderCommandHandler_Handle_PricesWithPolicyAndPromo(t *testing.T) {
	f := newFixture(t)
	f.policy.VATRate = decimal.NewFromInt(10)
	f.policy.DeliveryFee = kernel.MustMoney("5.00")
	f.policy.FreeDeliveryThreshold = kernel.MustMoney("200.00")
	f.addPromo(promo.Terms{Code: "save10", Discount: decimal.NewFromInt(10), Type: promo.Percent, Enabled: true})

	id := f.placeOrder("cod", "", "save10")

	totals := f.order(id).Totals()
	assert.Equal(t, "10.00", totals.Discount.String())
	assert.Equal(t, "5.00", totals.DeliveryFee.String())
	assert.Equal(t, "9.50", totals.VATAmount.String())
	assert.Equal(t, "104.50", totals.Total.String())
	assert.Equal(t, "SAVE10", f.order(id).PromoCode())
	assert.Equal(t, 0, f.promo("SAVE10").UsedCount(), "use is counted on confirmation")
}

func TestCreateOrderCommandHandler_Handle_FreeDeliveryAboveThreshold(t *testing.T) {
	f := newFixture(t)
	f.policy.DeliveryFee = kernel.MustMoney("5.00")
	f.policy.FreeDeliveryThreshold = kernel.MustMoney("100.00")

	id := f.placeOrder("cod", "", "")

	assert.True(t, f.order(id).Totals().DeliveryFee.IsZero())
}

func TestCreateOrderCommandHandler_Handle_UnknownPromo(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, f.customer, f.customer.ID(),
		[]commands.OrderLine{brisket(2)}, "1 Butcher Lane", nil, "cod", "", "NOPE")
	require.NoError(t, err)

	err = commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrPromoNotApplicable)
	_, err = f.uowFactory.Create().OrderRepository().Get(f.ctx, id)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_PromoBelowMinimum(t *testing.T) {
	f := newFixture(t)
	minOrder := kernel.MustMoney("150.00")
	f.addPromo(promo.Terms{Code: "BIG", Discount: decimal.NewFromInt(15), Type: promo.Fixed, MinOrder: &minOrder, Enabled: true})
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), f.customer, f.customer.ID(),
		[]commands.OrderLine{brisket(2)}, "1 Butcher Lane", nil, "cod", "", "BIG")
	require.NoError(t, err)

	err = commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrPromoNotApplicable)
	assert.ErrorIs(t, err, promo.ErrPromoBelowMinimum)
}

func TestCreateOrderCommandHandler_Handle_WalletPaysFromBalance(t *testing.T) {
	f := newFixture(t)
	f.topUp(f.customer.ID(), "150.00")

	id := f.placeOrder("wallet", "", "")

	o := f.order(id)
	assert.Equal(t, order.PaymentCaptured, o.PaymentStatus())
	assert.Contains(t, o.PaymentReference(), "wallet:")

	account := f.account(f.customer.ID())
	assert.Equal(t, "50.00", account.Balance().String())
	requireLedgerConsistent(t, account)
}

func TestCreateOrderCommandHandler_Handle_WalletInsufficientBalance(t *testing.T) {
	f := newFixture(t)
	f.topUp(f.customer.ID(), "50.00")
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, f.customer, f.customer.ID(),
		[]commands.OrderLine{brisket(2)}, "1 Butcher Lane", nil, "wallet", "", "")
	require.NoError(t, err)

	err = commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
	account := f.account(f.customer.ID())
	assert.Equal(t, "50.00", account.Balance().String())
	assert.Len(t, account.Transactions(), 1)
	_, err = f.uowFactory.Create().OrderRepository().Get(f.ctx, id)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_ForAnotherCustomer(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), f.customer, kernel.NewUUID(),
		[]commands.OrderLine{brisket(1)}, "1 Butcher Lane", nil, "cod", "", "")
	require.NoError(t, err)

	err = commands.NewCreateOrderCommandHandler(f.uowFactory, f.policy, fixedClock).Handle(f.ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, customer.ID(),
		[]commands.OrderLine{brisket(1)}, "1 Butcher Lane", nil, "cod", "", "")
	require.NoError(t, err)

	beginErr := errors.New("connection refused")
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(beginErr).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCreateOrderCommandHandler(factory, commands.StorePolicy{}, fixedClock).Handle(ctx, cmd)

	require.ErrorIs(t, err, beginErr)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customer, customer.ID(),
		[]commands.OrderLine{brisket(1)}, "1 Butcher Lane", nil, "cod", "", "")
	require.NoError(t, err)

	addErr := errors.New("unique violation")
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(addErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCreateOrderCommandHandler(factory, commands.StorePolicy{}, fixedClock).Handle(ctx, cmd)

	require.ErrorIs(t, err, addErr)
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
