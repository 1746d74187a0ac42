package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/ledger"
)

// RedeemLoyaltyPointsCommandHandler spends loyalty points. With a positive point value in
// the store policy the points are converted into wallet credit and the credit transaction
// is returned; otherwise they are only deducted and the zero Transaction is returned.
type RedeemLoyaltyPointsCommandHandler struct {
	uowFactory UoWFactory
	policy     StorePolicy
	clock      Clock
}

func NewRedeemLoyaltyPointsCommandHandler(uowFactory UoWFactory, policy StorePolicy, clock Clock) RedeemLoyaltyPointsCommandHandler {
	return RedeemLoyaltyPointsCommandHandler{uowFactory: uowFactory, policy: policy, clock: clock}
}

func (h RedeemLoyaltyPointsCommandHandler) Handle(
	ctx context.Context, command RedeemLoyaltyPointsCommand,
) (ledger.Transaction, error) {
	if err := command.Validate(); err != nil {
		return ledger.Transaction{}, err
	}
	if err := authorizeAccountOwner(command.Actor(), command.CustomerID(), "redeem loyalty points"); err != nil {
		return ledger.Transaction{}, err
	}

	return updateAccount(ctx, h.uowFactory, command.CustomerID(), h.clock(),
		func(account *ledger.Account, now time.Time) (ledger.Transaction, error) {
			if h.policy.PointValue.IsPositive() {
				return account.ConvertLoyaltyPoints(command.Points(), h.policy.PointValue, now)
			}
			return ledger.Transaction{}, account.RedeemLoyaltyPoints(command.Points())
		})
}
