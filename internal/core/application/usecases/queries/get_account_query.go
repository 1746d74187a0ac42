package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// DefaultTransactionLimit is how many transactions GetAccountQuery returns when no
// limit is given.
const DefaultTransactionLimit = 50

var (
	ErrGetAccountQueryIsNotConstructed = errors.New(
		"GetAccountQuery must be created via NewGetAccountQuery constructor",
	)
)

// GetAccountQuery reads a customer's wallet: the balance, loyalty points, what the
// points are worth and the latest transactions. Clients display these numbers as they
// are; the balance is never recomputed outside the ledger.
type GetAccountQuery struct {
	customerID kernel.UUID
	limit      int
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetAccountQuery builds the query. A limit of 0 means DefaultTransactionLimit.
func NewGetAccountQuery(customerID kernel.UUID, limit int, actor kernel.Actor) (GetAccountQuery, error) {
	if err := errors.Join(customerID.Validate(), actor.Validate()); err != nil {
		return GetAccountQuery{}, err
	}
	if limit < 0 {
		return GetAccountQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unlimited")
	}
	if !actor.IsBackOffice() && !actor.ID().IsEqual(customerID) {
		return GetAccountQuery{}, errs.NewUnauthorizedError(actor.ID().String(), "read another customer's wallet")
	}
	if limit == 0 {
		limit = DefaultTransactionLimit
	}

	return GetAccountQuery{
		customerID: customerID,
		limit:      limit,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

func (q GetAccountQuery) CustomerID() kernel.UUID { return q.customerID }
func (q GetAccountQuery) Limit() int              { return q.limit }
func (q GetAccountQuery) Actor() kernel.Actor     { return q.actor }

type AccountResponse struct {
	CustomerID            kernel.UUID           `json:"customerId"`
	Balance               kernel.Money          `json:"balance"`
	LoyaltyPoints         int64                 `json:"loyaltyPoints"`
	LoyaltyLifetimeEarned int64                 `json:"loyaltyLifetimeEarned"`
	LoyaltyPointsValue    kernel.Money          `json:"loyaltyPointsValue"`
	TransactionCount      int                   `json:"transactionCount"`
	Transactions          []TransactionResponse `json:"transactions"`
}

type TransactionResponse struct {
	ID          kernel.UUID            `json:"id"`
	Type        ledger.TransactionType `json:"type"`
	Amount      kernel.Money           `json:"amount"`
	Description string                 `json:"description"`
	Reference   string                 `json:"reference,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}
