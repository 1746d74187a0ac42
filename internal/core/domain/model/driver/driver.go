package driver

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to register a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver constructor")
	// ErrDriverIsInactive is returned when an inactive driver is assigned a delivery.
	ErrDriverIsInactive = errors.New("driver is inactive")
)

// Driver represents a delivery driver of the store's own fleet.
// It is an aggregate root that manages driver identity, availability and position.
//
// Key responsibilities:
//   - Managing driver identity (ID, name)
//   - Declaring how many deliveries the driver can carry at once
//   - Keeping the last position the driver reported
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name and positive capacity
//   - Only active drivers can be assigned new deliveries
//   - A driver with as many open deliveries as its capacity takes no more
//
// Example usage:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Ana", 3)
//	if err != nil {
//	    // Handle construction error
//	}
type Driver struct {
	// id uniquely identifies the driver; it is also the subject of the driver's JWT
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// capacity is the number of deliveries the driver can carry at once
	capacity int
	// active is false for drivers who are off shift
	active bool
	// location is the last position the driver reported, nil until the first report
	location *kernel.GeoPoint
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver registers a new, active driver without a known position.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - capacity: Deliveries carried at once (must be positive)
//
// Returns:
//   - *Driver: A fully initialized driver
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewDriver(id kernel.UUID, name string, capacity int) (*Driver, error) {
	d := &Driver{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
func RestoreDriver(id kernel.UUID, name string, capacity int, active bool, location *kernel.GeoPoint) (*Driver, error) {
	d := &Driver{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setCapacity(capacity),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Capacity() int {
	return d.capacity
}

func (d *Driver) IsActive() bool {
	return d.active
}

// Location returns the last reported position or nil.
func (d *Driver) Location() *kernel.GeoPoint {
	if d.location == nil {
		return nil
	}
	loc := *d.location
	return &loc
}

// Activate puts the driver on shift.
func (d *Driver) Activate() {
	d.active = true
}

// Deactivate takes the driver off shift. Deliveries already assigned are not affected.
func (d *Driver) Deactivate() {
	d.active = false
}

// ReportLocation stores the driver's latest position.
func (d *Driver) ReportLocation(point kernel.GeoPoint) error {
	return d.setLocation(&point)
}

// CanTakeDelivery reports whether the driver is active and has room for one more delivery.
//
// Parameters:
//   - openDeliveries: deliveries currently assigned to the driver and not yet delivered
//
// Returns:
//   - nil if the driver can take it
//   - ErrDriverIsInactive or *errs.ValueIsOutOfRangeError otherwise
func (d *Driver) CanTakeDelivery(openDeliveries int) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.active {
		return ErrDriverIsInactive
	}
	if openDeliveries >= d.capacity {
		return errs.NewValueIsOutOfRangeError("openDeliveries", openDeliveries+1, 1, d.capacity)
	}
	return nil
}

// DistanceKm returns the distance from the driver's last position to target.
// Drivers who never reported a position are treated as infinitely far away.
func (d *Driver) DistanceKm(target kernel.GeoPoint) (float64, bool, error) {
	if d.location == nil {
		return 0, false, nil
	}
	km, err := d.location.DistanceKm(target)
	if err != nil {
		return 0, false, err
	}
	return km, true, nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	d.capacity = capacity
	return nil
}

func (d *Driver) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		d.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	d.location = &loc
	return nil
}
