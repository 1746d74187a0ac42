package memory

import (
	"context"
	"encoding/json"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// ErrNoActiveTransaction is returned by writes, Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("memory: no active transaction")

type persistable interface {
	MarkPersisted()
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes and holds entity locks until Commit or Rollback.
// Reads outside Begin see committed state only.
type UnitOfWork struct {
	store *Store

	active        bool
	held          map[string]struct{}
	staged        map[string]map[string][]byte
	outboxAppends []string
	outboxSent    map[string]struct{}
	tracked       []trackedAggregate
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.held = make(map[string]struct{})
	u.staged = make(map[string]map[string][]byte)
	u.outboxAppends = nil
	u.outboxSent = make(map[string]struct{})
	u.tracked = nil
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.store.apply(u.staged, u.outboxAppends, u.outboxSent)
	for _, t := range u.tracked {
		if p, ok := t.Aggregate.(persistable); ok {
			p.MarkPersisted()
		}
	}
	u.end()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	u.end()
	return nil
}

func (u *UnitOfWork) end() {
	for key := range u.held {
		u.store.locks.release(key)
	}
	u.active = false
	u.held = nil
	u.staged = nil
	u.outboxAppends = nil
	u.outboxSent = nil
	u.tracked = nil
}

// TrackAggregate registers an aggregate written in this unit of work; its pending history
// is marked persisted on commit.
func (u *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	u.tracked = append(u.tracked, trackedAggregate{ID: id, Aggregate: aggregate})
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) TrackingRepository() ports.TrackingRepository {
	return &trackingRepository{uow: u}
}

func (u *UnitOfWork) LedgerRepository() ports.LedgerRepository {
	return &ledgerRepository{uow: u}
}

func (u *UnitOfWork) PromoCodeRepository() ports.PromoCodeRepository {
	return &promoCodeRepository{uow: u}
}

func (u *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &driverRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &outboxRepository{uow: u}
}

func lockKey(table, key string) string {
	return table + ":" + key
}

// lock takes the entity lock unless this unit of work already holds it.
func (u *UnitOfWork) lock(ctx context.Context, table, key string) error {
	if !u.active {
		return ErrNoActiveTransaction
	}
	k := lockKey(table, key)
	if _, ok := u.held[k]; ok {
		return nil
	}
	if err := u.store.locks.acquire(ctx, k); err != nil {
		return err
	}
	u.held[k] = struct{}{}
	return nil
}

func (u *UnitOfWork) tryLock(table, key string) bool {
	k := lockKey(table, key)
	if _, ok := u.held[k]; ok {
		return true
	}
	if !u.store.locks.tryAcquire(k) {
		return false
	}
	u.held[k] = struct{}{}
	return true
}

func (u *UnitOfWork) read(table, key string) ([]byte, bool) {
	if u.active {
		if row, ok := u.staged[table][key]; ok {
			return row, true
		}
	}
	return u.store.read(table, key)
}

func (u *UnitOfWork) scan(table string) map[string][]byte {
	rows := u.store.scan(table)
	if u.active {
		for k, v := range u.staged[table] {
			rows[k] = v
		}
	}
	return rows
}

func (u *UnitOfWork) write(ctx context.Context, table, key string, record any) error {
	if err := u.lock(ctx, table, key); err != nil {
		return err
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if u.staged[table] == nil {
		u.staged[table] = make(map[string][]byte)
	}
	u.staged[table][key] = raw
	return nil
}

func (u *UnitOfWork) exists(table, key string) bool {
	_, ok := u.read(table, key)
	return ok
}
