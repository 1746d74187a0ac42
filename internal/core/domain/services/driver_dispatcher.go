package services

import (
	"errors"
	"math"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
)

// ErrDriverNotFound is returned when no suitable driver is available for a delivery.
// This occurs when either no drivers are provided or none of them is active with free capacity.
var ErrDriverNotFound = errors.New("driver not found")

// DriverCandidate is a driver together with the number of deliveries they currently carry.
type DriverCandidate struct {
	Driver         *driver.Driver
	OpenDeliveries int
}

// DriverDispatcher is a domain service that picks a driver for a delivery when an admin
// assigns one without naming a driver.
//
// Business rules:
//   - Only active drivers with free capacity are considered
//   - Among drivers with a known position, the nearest to the destination wins
//   - Drivers without a known position, or all drivers when the destination has no
//     coordinates, are ranked by the fewest open deliveries
//   - A positioned driver always beats an unpositioned one
//
// Example usage:
//
//	dispatcher := services.NewDriverDispatcher()
//	best, err := dispatcher.Dispatch(order.Address().Location(), candidates)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // No driver can take this delivery right now
//	    return
//	}
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Dispatch returns the best candidate for a delivery to destination (which may be nil).
func (d DriverDispatcher) Dispatch(destination *kernel.GeoPoint, candidates []DriverCandidate) (*driver.Driver, error) {
	var (
		best         *driver.Driver
		bestDistance = math.MaxFloat64
		bestLoad     = math.MaxInt
		bestHasPoint bool
	)

	for _, c := range candidates {
		if err := c.Driver.Validate(); err != nil {
			return nil, err
		}
		if c.Driver.CanTakeDelivery(c.OpenDeliveries) != nil {
			continue
		}

		distance, known := math.MaxFloat64, false
		if destination != nil {
			km, ok, err := c.Driver.DistanceKm(*destination)
			if err != nil {
				return nil, err
			}
			distance, known = km, ok
		}

		switch {
		case known && (!bestHasPoint || distance < bestDistance):
			best, bestDistance, bestLoad, bestHasPoint = c.Driver, distance, c.OpenDeliveries, true
		case !known && !bestHasPoint && c.OpenDeliveries < bestLoad:
			best, bestLoad = c.Driver, c.OpenDeliveries
		}
	}

	if best == nil {
		return nil, ErrDriverNotFound
	}
	return best, nil
}
