package ports

import (
	"context"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for drivers.
type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllActive returns every driver currently on shift.
	GetAllActive(ctx context.Context) ([]*driver.Driver, error)
}
