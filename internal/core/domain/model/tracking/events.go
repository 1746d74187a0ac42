package tracking

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Event is a domain event raised by the Tracking aggregate.
type Event interface {
	OrderID() kernel.UUID
	EventName() string
}

// StatusChanged is raised for every step the tracking takes.
type StatusChanged struct {
	Order     kernel.UUID
	DriverID  kernel.UUID
	OldStatus Status
	NewStatus Status
	Notes     string
	ChangedAt time.Time
}

func (e StatusChanged) OrderID() kernel.UUID { return e.Order }
func (e StatusChanged) EventName() string    { return "delivery.status_changed" }

// DriverAssigned is raised when an admin assigns or reassigns the driver.
type DriverAssigned struct {
	Order      kernel.UUID
	DriverID   kernel.UUID
	Previous   *kernel.UUID
	AssignedAt time.Time
}

func (e DriverAssigned) OrderID() kernel.UUID { return e.Order }
func (e DriverAssigned) EventName() string    { return "delivery.driver_assigned" }
