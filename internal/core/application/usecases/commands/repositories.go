// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Handlers load every entity they change through GetForUpdate, in the fixed order
// order, tracking, ledger account, promo code. Ledger side effects and outbox messages are
// written in the same unit of work as the transition that caused them. Payment gateway
// calls are made outside any unit of work.
package commands

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/shopspring/decimal"
)

type (
	// UoWFactory creates a fresh unit of work for every command.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   ledgerRepo := uow.LedgerRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoWFactory interface {
		Create() ports.UnitOfWork
	}

	// Clock returns the current time. Handlers stamp history, timeline and ledger entries with it.
	Clock func() time.Time
)

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// StorePolicy is the pricing and reward configuration applied by the handlers.
type StorePolicy struct {
	// VATRate in percent, applied to subtotal - discount + delivery fee.
	VATRate decimal.Decimal
	// DeliveryFee charged below the free delivery threshold.
	DeliveryFee kernel.Money
	// FreeDeliveryThreshold waives the delivery fee for subtotals at or above it. Zero disables it.
	FreeDeliveryThreshold kernel.Money
	Rewards               order.RewardPolicy
	// PointValue is the wallet credit one loyalty point converts to. Zero makes redemption a
	// plain point deduction.
	PointValue decimal.Decimal
}

func (p StorePolicy) deliveryFeeFor(subtotal kernel.Money) kernel.Money {
	if p.FreeDeliveryThreshold.IsPositive() && !subtotal.LessThan(p.FreeDeliveryThreshold) {
		return kernel.ZeroMoney()
	}
	return p.DeliveryFee
}
