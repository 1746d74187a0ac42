package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/shopspring/decimal"
)

// GetAccountQueryHandler projects a ledger account. An account that was never written
// reads as empty.
type GetAccountQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	pointValue decimal.Decimal
	clock      func() time.Time
}

func NewGetAccountQueryHandler(
	uowFactory ports.UnitOfWorkFactory, pointValue decimal.Decimal, clock func() time.Time,
) GetAccountQueryHandler {
	return GetAccountQueryHandler{uowFactory: uowFactory, pointValue: pointValue, clock: clock}
}

// Handle returns the account with its transactions newest first.
func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (AccountResponse, error) {
	if err := query.Validate(); err != nil {
		return AccountResponse{}, err
	}

	account, err := h.uowFactory.Create().LedgerRepository().Get(ctx, query.CustomerID(), h.clock())
	if err != nil {
		return AccountResponse{}, err
	}

	transactions := account.Transactions()
	response := AccountResponse{
		CustomerID:            account.CustomerID(),
		Balance:               account.Balance(),
		LoyaltyPoints:         account.LoyaltyPoints(),
		LoyaltyLifetimeEarned: account.LoyaltyLifetimeEarned(),
		LoyaltyPointsValue:    kernel.NewMoney(h.pointValue.Mul(decimal.NewFromInt(account.LoyaltyPoints()))),
		TransactionCount:      len(transactions),
		Transactions:          make([]TransactionResponse, 0, min(len(transactions), query.Limit())),
	}
	for i := len(transactions) - 1; i >= 0 && len(response.Transactions) < query.Limit(); i-- {
		tx := transactions[i]
		response.Transactions = append(response.Transactions, TransactionResponse{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			Reference:   tx.Reference,
			CreatedAt:   tx.CreatedAt,
		})
	}

	return response, nil
}
