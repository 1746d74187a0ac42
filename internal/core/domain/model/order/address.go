package order

import (
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Address is where the order is delivered. The coordinates are optional; when present
// they let the tracking projection report the driver's remaining distance.
type Address struct {
	line     string
	location *kernel.GeoPoint
}

func NewAddress(line string, location *kernel.GeoPoint) (Address, error) {
	if strings.TrimSpace(line) == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return Address{}, err
		}
		loc := *location
		location = &loc
	}
	return Address{line: line, location: location}, nil
}

func (a Address) Line() string {
	return a.line
}

// Location returns the coordinates or nil when they are unknown.
func (a Address) Location() *kernel.GeoPoint {
	if a.location == nil {
		return nil
	}
	loc := *a.location
	return &loc
}
