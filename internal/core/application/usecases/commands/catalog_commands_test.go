package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePromoCodeCommandHandler(t *testing.T) {
	terms := promo.Terms{Code: " Welcome ", Discount: decimal.NewFromInt(15), Type: promo.Percent, Enabled: true}

	t.Run("stores normalized code", func(t *testing.T) {
		f := newFixture(t)
		f.addPromo(terms)

		code := f.promo("WELCOME")
		assert.Equal(t, "WELCOME", code.Terms().Code)
		assert.Zero(t, code.UsedCount())
	})

	t.Run("duplicate code", func(t *testing.T) {
		f := newFixture(t)
		f.addPromo(terms)

		cmd, err := commands.NewCreatePromoCodeCommand(promo.Terms{
			Code: "welcome", Discount: decimal.NewFromInt(5), Type: promo.Fixed, Enabled: true,
		}, f.admin)
		require.NoError(t, err)
		err = commands.NewCreatePromoCodeCommandHandler(f.uowFactory).Handle(f.ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, promo.Percent, f.promo("WELCOME").Terms().Type)
	})

	t.Run("staff cannot create codes", func(t *testing.T) {
		f := newFixture(t)
		cmd, err := commands.NewCreatePromoCodeCommand(terms, f.staff)
		require.NoError(t, err)

		err = commands.NewCreatePromoCodeCommandHandler(f.uowFactory).Handle(f.ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestNewCreatePromoCodeCommand_InvalidTerms(t *testing.T) {
	admin := newActor(t, kernel.RoleAdmin)

	_, err := commands.NewCreatePromoCodeCommand(promo.Terms{Code: "BIG", Discount: decimal.NewFromInt(120), Type: promo.Percent}, admin)

	assert.Error(t, err)
}

func TestDriverCommandHandler(t *testing.T) {
	t.Run("register and toggle shift", func(t *testing.T) {
		f := newFixture(t)
		f.registerDriver(f.driver, 2)
		handler := commands.NewDriverCommandHandler(f.uowFactory)

		off, err := commands.NewSetDriverShiftCommand(f.driver.ID(), false, f.admin)
		require.NoError(t, err)
		require.NoError(t, handler.HandleShift(f.ctx, off))
		active, err := f.uowFactory.Create().DriverRepository().GetAllActive(f.ctx)
		require.NoError(t, err)
		assert.Empty(t, active)

		on, err := commands.NewSetDriverShiftCommand(f.driver.ID(), true, f.admin)
		require.NoError(t, err)
		require.NoError(t, handler.HandleShift(f.ctx, on))
		active, err = f.uowFactory.Create().DriverRepository().GetAllActive(f.ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, 2, active[0].Capacity())
	})

	t.Run("registering twice", func(t *testing.T) {
		f := newFixture(t)
		f.registerDriver(f.driver, 2)

		cmd, err := commands.NewRegisterDriverCommand(f.driver.ID(), "Ana", 2, f.admin)
		require.NoError(t, err)
		err = commands.NewDriverCommandHandler(f.uowFactory).HandleRegister(f.ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown driver shift", func(t *testing.T) {
		f := newFixture(t)
		cmd, err := commands.NewSetDriverShiftCommand(kernel.NewUUID(), true, f.admin)
		require.NoError(t, err)

		err = commands.NewDriverCommandHandler(f.uowFactory).HandleShift(f.ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("staff cannot register", func(t *testing.T) {
		f := newFixture(t)
		cmd, err := commands.NewRegisterDriverCommand(f.driver.ID(), "Ana", 2, f.staff)
		require.NoError(t, err)

		err = commands.NewDriverCommandHandler(f.uowFactory).HandleRegister(f.ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

func TestNewRegisterDriverCommand_Validation(t *testing.T) {
	admin := newActor(t, kernel.RoleAdmin)

	_, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "", 2, admin)
	assert.Error(t, err)

	_, err = commands.NewRegisterDriverCommand(kernel.NewUUID(), "Ana", 0, admin)
	assert.Error(t, err)
}
