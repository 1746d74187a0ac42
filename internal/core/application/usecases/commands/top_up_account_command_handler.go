package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/pkg/errs"
)

// TopUpAccountCommandHandler credits a wallet. Customers top up their own wallet; back
// office staff may top up any.
type TopUpAccountCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewTopUpAccountCommandHandler(uowFactory UoWFactory, clock Clock) TopUpAccountCommandHandler {
	return TopUpAccountCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h TopUpAccountCommandHandler) Handle(ctx context.Context, command TopUpAccountCommand) (ledger.Transaction, error) {
	if err := command.Validate(); err != nil {
		return ledger.Transaction{}, err
	}
	if err := authorizeAccountOwner(command.Actor(), command.CustomerID(), "top up the wallet"); err != nil {
		return ledger.Transaction{}, err
	}

	return updateAccount(ctx, h.uowFactory, command.CustomerID(), h.clock(),
		func(account *ledger.Account, now time.Time) (ledger.Transaction, error) {
			return account.Credit(command.Amount(), ledger.TypeTopUp, "Wallet top-up", command.Reference(), now)
		})
}

// authorizeAccountOwner lets customers act on their own account and back office staff on any.
func authorizeAccountOwner(actor kernel.Actor, customerID kernel.UUID, action string) error {
	if actor.IsBackOffice() || (actor.IsCustomer() && actor.ID().IsEqual(customerID)) {
		return nil
	}
	return errs.NewUnauthorizedError(actor.ID().String(), action)
}

// updateAccount runs one change against the locked account and saves it.
func updateAccount(
	ctx context.Context,
	uowFactory UoWFactory,
	customerID kernel.UUID,
	now time.Time,
	change func(account *ledger.Account, now time.Time) (ledger.Transaction, error),
) (ledger.Transaction, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ledger.Transaction{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	account, err := uow.LedgerRepository().GetForUpdate(ctx, customerID, now)
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx, err := change(account, now)
	if err != nil {
		return ledger.Transaction{}, err
	}

	if err = uow.LedgerRepository().Save(ctx, account); err != nil {
		return ledger.Transaction{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ledger.Transaction{}, err
	}

	return tx, nil
}
