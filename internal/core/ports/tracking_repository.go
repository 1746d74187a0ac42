package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for delivery trackings.
// Trackings are keyed by their order id.
type TrackingRepository interface {
	Add(ctx context.Context, aggregate *tracking.Tracking) error
	Update(ctx context.Context, aggregate *tracking.Tracking) error
	Get(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)
	GetForUpdate(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)

	// ListByDriver returns the trackings assigned to a driver. With openOnly set,
	// delivered trackings are left out.
	ListByDriver(ctx context.Context, driverID kernel.UUID, openOnly bool) ([]*tracking.Tracking, error)
}
