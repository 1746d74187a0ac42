package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for customer accounts.
type LedgerRepository interface {
	// Get retrieves an account without locking it. A customer without an account yet gets
	// an empty, unsaved account.
	Get(ctx context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error)

	// GetForUpdate locks the customer's account, creating it first when it does not exist,
	// and holds the lock until the unit of work ends.
	GetForUpdate(ctx context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error)

	// Save writes the balance and appends the account's pending transactions.
	Save(ctx context.Context, aggregate *ledger.Account) error
}
