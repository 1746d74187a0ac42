package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/ledger"
)

// AdjustBalanceCommandHandler applies admin corrections. A negative adjustment larger
// than the balance fails with errs.ErrInsufficientBalance and changes nothing.
type AdjustBalanceCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewAdjustBalanceCommandHandler(uowFactory UoWFactory, clock Clock) AdjustBalanceCommandHandler {
	return AdjustBalanceCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AdjustBalanceCommandHandler) Handle(ctx context.Context, command AdjustBalanceCommand) (ledger.Transaction, error) {
	if err := command.Validate(); err != nil {
		return ledger.Transaction{}, err
	}

	return updateAccount(ctx, h.uowFactory, command.CustomerID(), h.clock(),
		func(account *ledger.Account, now time.Time) (ledger.Transaction, error) {
			return account.AdjustByAdmin(command.Amount(), command.Reason(), command.Actor(), now)
		})
}
