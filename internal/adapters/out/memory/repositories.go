package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"storefront/internal/core/domain/model/driver"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"
)

func errAlreadyExists(param string, id any) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%v already exists", id))
}

func decode[T any](raw []byte) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	key := aggregate.ID().String()
	if err := r.uow.lock(ctx, tableOrders, key); err != nil {
		return err
	}
	if r.uow.exists(tableOrders, key) {
		return errAlreadyExists("order", key)
	}
	return r.save(ctx, aggregate)
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if !r.uow.exists(tableOrders, aggregate.ID().String()) {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	return r.save(ctx, aggregate)
}

func (r *orderRepository) save(ctx context.Context, aggregate *order.Order) error {
	if err := r.uow.write(ctx, tableOrders, aggregate.ID().String(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(id)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := r.uow.lock(ctx, tableOrders, id.String()); err != nil {
		return nil, err
	}
	return r.load(id)
}

func (r *orderRepository) ListByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	var orders []*order.Order
	for _, raw := range r.uow.scan(tableOrders) {
		o, err := restoreOrder(raw)
		if err != nil {
			return nil, err
		}
		if o.CustomerID().IsEqual(customerID) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().After(orders[j].CreatedAt())
	})
	return orders, nil
}

func (r *orderRepository) load(id kernel.UUID) (*order.Order, error) {
	raw, ok := r.uow.read(tableOrders, id.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return restoreOrder(raw)
}

func restoreOrder(raw []byte) (*order.Order, error) {
	s, err := decode[order.Snapshot](raw)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(s)
}

type trackingRepository struct {
	uow *UnitOfWork
}

func (r *trackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	key := aggregate.OrderID().String()
	if err := r.uow.lock(ctx, tableTrackings, key); err != nil {
		return err
	}
	if r.uow.exists(tableTrackings, key) {
		return errAlreadyExists("tracking", key)
	}
	return r.save(ctx, aggregate)
}

func (r *trackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if !r.uow.exists(tableTrackings, aggregate.OrderID().String()) {
		return errs.NewObjectNotFoundError("tracking", aggregate.OrderID())
	}
	return r.save(ctx, aggregate)
}

func (r *trackingRepository) save(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := r.uow.write(ctx, tableTrackings, aggregate.OrderID().String(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

func (r *trackingRepository) Get(_ context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	return r.load(orderID)
}

func (r *trackingRepository) GetForUpdate(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	if err := r.uow.lock(ctx, tableTrackings, orderID.String()); err != nil {
		return nil, err
	}
	return r.load(orderID)
}

func (r *trackingRepository) ListByDriver(
	_ context.Context, driverID kernel.UUID, openOnly bool,
) ([]*tracking.Tracking, error) {
	var trackings []*tracking.Tracking
	for _, raw := range r.uow.scan(tableTrackings) {
		t, err := restoreTracking(raw)
		if err != nil {
			return nil, err
		}
		if !t.IsAssignedTo(driverID) {
			continue
		}
		if openOnly && t.Status() == tracking.Delivered {
			continue
		}
		trackings = append(trackings, t)
	}
	sort.Slice(trackings, func(i, j int) bool {
		return trackings[i].CreatedAt().Before(trackings[j].CreatedAt())
	})
	return trackings, nil
}

func (r *trackingRepository) load(orderID kernel.UUID) (*tracking.Tracking, error) {
	raw, ok := r.uow.read(tableTrackings, orderID.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("tracking", orderID)
	}
	return restoreTracking(raw)
}

func restoreTracking(raw []byte) (*tracking.Tracking, error) {
	s, err := decode[tracking.Snapshot](raw)
	if err != nil {
		return nil, err
	}
	return tracking.RestoreTracking(s)
}

type ledgerRepository struct {
	uow *UnitOfWork
}

func (r *ledgerRepository) Get(_ context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error) {
	return r.load(customerID, now)
}

func (r *ledgerRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error) {
	if err := r.uow.lock(ctx, tableAccounts, customerID.String()); err != nil {
		return nil, err
	}
	return r.load(customerID, now)
}

func (r *ledgerRepository) Save(ctx context.Context, aggregate *ledger.Account) error {
	if err := r.uow.write(ctx, tableAccounts, aggregate.CustomerID().String(), aggregate.Snapshot()); err != nil {
		return err
	}
	r.uow.TrackAggregate(aggregate.CustomerID(), aggregate)
	return nil
}

func (r *ledgerRepository) load(customerID kernel.UUID, now time.Time) (*ledger.Account, error) {
	raw, ok := r.uow.read(tableAccounts, customerID.String())
	if !ok {
		return ledger.NewAccount(customerID, now)
	}
	s, err := decode[ledger.Snapshot](raw)
	if err != nil {
		return nil, err
	}
	return ledger.RestoreAccount(s)
}

type promoCodeRepository struct {
	uow *UnitOfWork
}

func (r *promoCodeRepository) Add(ctx context.Context, aggregate *promo.PromoCode) error {
	if err := r.uow.lock(ctx, tablePromos, aggregate.Code()); err != nil {
		return err
	}
	if r.uow.exists(tablePromos, aggregate.Code()) {
		return errAlreadyExists("code", aggregate.Code())
	}
	return r.uow.write(ctx, tablePromos, aggregate.Code(), aggregate.Snapshot())
}

func (r *promoCodeRepository) Update(ctx context.Context, aggregate *promo.PromoCode) error {
	if !r.uow.exists(tablePromos, aggregate.Code()) {
		return errs.NewObjectNotFoundError("code", aggregate.Code())
	}
	return r.uow.write(ctx, tablePromos, aggregate.Code(), aggregate.Snapshot())
}

func (r *promoCodeRepository) Get(_ context.Context, code string) (*promo.PromoCode, error) {
	return r.load(promo.Normalize(code))
}

func (r *promoCodeRepository) GetForUpdate(ctx context.Context, code string) (*promo.PromoCode, error) {
	code = promo.Normalize(code)
	if err := r.uow.lock(ctx, tablePromos, code); err != nil {
		return nil, err
	}
	return r.load(code)
}

func (r *promoCodeRepository) load(code string) (*promo.PromoCode, error) {
	raw, ok := r.uow.read(tablePromos, code)
	if !ok {
		return nil, errs.NewObjectNotFoundError("code", code)
	}
	s, err := decode[promo.Snapshot](raw)
	if err != nil {
		return nil, err
	}
	return promo.RestorePromoCode(s)
}

// driverRecord is the stored form of a driver.
type driverRecord struct {
	ID        kernel.UUID `json:"id"`
	Name      string      `json:"name"`
	Capacity  int         `json:"capacity"`
	Active    bool        `json:"active"`
	Latitude  *float64    `json:"latitude,omitempty"`
	Longitude *float64    `json:"longitude,omitempty"`
}

func driverToRecord(d *driver.Driver) driverRecord {
	rec := driverRecord{
		ID:       d.ID(),
		Name:     d.Name(),
		Capacity: d.Capacity(),
		Active:   d.IsActive(),
	}
	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		rec.Latitude, rec.Longitude = &lat, &lon
	}
	return rec
}

func (rec driverRecord) toDomain() (*driver.Driver, error) {
	var location *kernel.GeoPoint
	if rec.Latitude != nil && rec.Longitude != nil {
		point, err := kernel.NewGeoPoint(*rec.Latitude, *rec.Longitude)
		if err != nil {
			return nil, err
		}
		location = &point
	}
	return driver.RestoreDriver(rec.ID, rec.Name, rec.Capacity, rec.Active, location)
}

type driverRepository struct {
	uow *UnitOfWork
}

func (r *driverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	key := aggregate.ID().String()
	if err := r.uow.lock(ctx, tableDrivers, key); err != nil {
		return err
	}
	if r.uow.exists(tableDrivers, key) {
		return errAlreadyExists("driver", key)
	}
	return r.uow.write(ctx, tableDrivers, key, driverToRecord(aggregate))
}

func (r *driverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	key := aggregate.ID().String()
	if !r.uow.exists(tableDrivers, key) {
		return errs.NewObjectNotFoundError("driver", aggregate.ID())
	}
	return r.uow.write(ctx, tableDrivers, key, driverToRecord(aggregate))
}

func (r *driverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	raw, ok := r.uow.read(tableDrivers, id.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	rec, err := decode[driverRecord](raw)
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

func (r *driverRepository) GetAllActive(_ context.Context) ([]*driver.Driver, error) {
	var drivers []*driver.Driver
	for _, raw := range r.uow.scan(tableDrivers) {
		rec, err := decode[driverRecord](raw)
		if err != nil {
			return nil, err
		}
		if !rec.Active {
			continue
		}
		d, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	sort.Slice(drivers, func(i, j int) bool {
		return drivers[i].Name() < drivers[j].Name()
	})
	return drivers, nil
}

type outboxRepository struct {
	uow *UnitOfWork
}

func (r *outboxRepository) Add(ctx context.Context, messages ...outbox.Message) error {
	for _, m := range messages {
		key := m.ID.String()
		if err := r.uow.write(ctx, tableOutbox, key, m); err != nil {
			return err
		}
		r.uow.outboxAppends = append(r.uow.outboxAppends, key)
	}
	return nil
}

func (r *outboxRepository) GetPendingForUpdate(_ context.Context, limit int) ([]outbox.Message, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}
	var pending []outbox.Message
	for _, key := range r.uow.store.pendingOutbox() {
		if limit > 0 && len(pending) >= limit {
			break
		}
		if !r.uow.tryLock(tableOutbox, key) {
			continue
		}
		raw, ok := r.uow.read(tableOutbox, key)
		if !ok {
			continue
		}
		m, err := decode[outbox.Message](raw)
		if err != nil {
			return nil, err
		}
		if m.IsSent() {
			continue
		}
		pending = append(pending, m)
	}
	return pending, nil
}

func (r *outboxRepository) Update(ctx context.Context, message outbox.Message) error {
	key := message.ID.String()
	if !r.uow.exists(tableOutbox, key) {
		return errs.NewObjectNotFoundError("message", message.ID)
	}
	if err := r.uow.write(ctx, tableOutbox, key, message); err != nil {
		return err
	}
	if message.IsSent() {
		r.uow.outboxSent[key] = struct{}{}
	}
	return nil
}
