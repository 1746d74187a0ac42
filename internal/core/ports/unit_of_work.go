package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
//
// Entity locks taken through the repositories' GetForUpdate methods are held until Commit
// or Rollback. Commands take them in a fixed order to avoid deadlocks:
// order, tracking, ledger account, promo code.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and releases its locks.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the current transaction and releases its locks.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TrackingRepository() TrackingRepository
	LedgerRepository() LedgerRepository
	PromoCodeRepository() PromoCodeRepository
	DriverRepository() DriverRepository
	OutboxRepository() OutboxRepository
}
