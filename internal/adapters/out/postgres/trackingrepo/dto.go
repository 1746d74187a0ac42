// Package trackingrepo persists delivery trackings: one row per order in "trackings" and
// the append-only timeline in "tracking_timeline".
package trackingrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type TrackingDTO struct {
	OrderID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverID          *uuid.UUID `gorm:"type:uuid;index"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	Latitude          *float64
	Longitude         *float64
	LocationUpdatedAt *time.Time
	CreatedAt         time.Time     `gorm:"not null"`
	Timeline          []TimelineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (TrackingDTO) TableName() string {
	return "trackings"
}

type TimelineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    string    `gorm:"type:varchar(32);not null"`
	Timestamp time.Time `gorm:"not null"`
	Notes     string    `gorm:"type:text"`
}

func (TimelineDTO) TableName() string {
	return "tracking_timeline"
}

func fromDomain(t *tracking.Tracking) TrackingDTO {
	s := t.Snapshot()
	dto := TrackingDTO{
		OrderID:   s.OrderID.Bytes(),
		Status:    s.Status.String(),
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt,
	}
	if s.DriverID != nil {
		raw := s.DriverID.Bytes()
		dto.DriverID = &raw
	}
	if !s.LocationUpdatedAt.IsZero() {
		updated := s.LocationUpdatedAt
		dto.LocationUpdatedAt = &updated
	}
	return dto
}

func timelineFromDomain(orderID kernel.UUID, offset int, entries []tracking.TimelineEntry) []TimelineDTO {
	dtos := make([]TimelineDTO, 0, len(entries))
	for i, entry := range entries {
		dtos = append(dtos, TimelineDTO{
			OrderID:   orderID.Bytes(),
			Seq:       offset + i,
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Notes:     entry.Notes,
		})
	}
	return dtos
}

func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := tracking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		id, idErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &id
	}

	timeline := make([]tracking.TimelineEntry, 0, len(dto.Timeline))
	for _, entry := range dto.Timeline {
		entryStatus, statusErr := tracking.ParseStatus(entry.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		timeline = append(timeline, tracking.TimelineEntry{
			Status:    entryStatus,
			Timestamp: entry.Timestamp,
			Notes:     entry.Notes,
		})
	}

	s := tracking.Snapshot{
		OrderID:   orderID,
		DriverID:  driverID,
		Status:    status,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		Timeline:  timeline,
		CreatedAt: dto.CreatedAt,
	}
	if dto.LocationUpdatedAt != nil {
		s.LocationUpdatedAt = *dto.LocationUpdatedAt
	}
	return tracking.RestoreTracking(s)
}
