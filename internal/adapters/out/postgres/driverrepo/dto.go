// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
package driverrepo

import (
	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The last reported position is stored in nullable columns until the first report.
type DriverDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Capacity  int       `gorm:"type:int;not null"`
	Active    bool      `gorm:"not null;index"`
	Latitude  *float64
	Longitude *float64
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(d *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:       d.ID().Bytes(),
		Name:     d.Name(),
		Capacity: d.Capacity(),
		Active:   d.IsActive(),
	}
	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}
	return dto
}

// toDomain converts a database DTO to a driver domain aggregate using RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return driver.RestoreDriver(id, dto.Name, dto.Capacity, dto.Active, location)
}
