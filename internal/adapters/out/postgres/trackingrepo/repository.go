package trackingrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Timeline = timelineFromDomain(aggregate.OrderID(), 0, aggregate.Timeline())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("tracking",
				fmt.Errorf("tracking for order %s already exists", aggregate.OrderID()))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves the current state and appends the timeline entries recorded since load.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).Where("order_id = ?", dto.OrderID).Select(
		"driver_id", "status", "latitude", "longitude", "location_updated_at",
	).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tracking", aggregate.OrderID().String())
	}

	pending := aggregate.PendingTimeline()
	if len(pending) > 0 {
		offset := len(aggregate.Timeline()) - len(pending)
		timeline := timelineFromDomain(aggregate.OrderID(), offset, pending)
		if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&timeline).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

func (r *GormTrackingRepository) Get(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	return r.get(ctx, r.db, orderID)
}

func (r *GormTrackingRepository) GetForUpdate(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), orderID)
}

func (r *GormTrackingRepository) get(ctx context.Context, db *gorm.DB, orderID kernel.UUID) (*tracking.Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := withTimeline(db.WithContext(ctx)).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByDriver returns the driver's trackings, oldest first. With openOnly, delivered
// trackings are left out.
func (r *GormTrackingRepository) ListByDriver(
	ctx context.Context, driverID kernel.UUID, openOnly bool,
) ([]*tracking.Tracking, error) {
	query := withTimeline(r.db.WithContext(ctx)).Where("driver_id = ?", driverID.Bytes())
	if openOnly {
		query = query.Where("status <> ?", tracking.Delivered.String())
	}

	var dtos []TrackingDTO
	if err := query.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	trackings := make([]*tracking.Tracking, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trackings = append(trackings, t)
	}

	return trackings, nil
}

func withTimeline(db *gorm.DB) *gorm.DB {
	return db.Preload("Timeline", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq") })
}
