// Package ports defines the contracts between the application core and its adapters:
// repositories bound to a unit of work, the payment gateway and the notification dispatcher.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its first history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, payment and totals changes and appends the order's
	// pending history entries. History rows are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it. Used by queries.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds its entity lock until the unit of work
	// commits or rolls back. Every mutating command loads orders through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
}
