// Package memory provides an in-process implementation of the unit of work and every
// repository. It is used when no database is configured and by the application tests.
//
// Records are stored as JSON snapshots, one per entity, so that callers never share
// aggregate instances with the store. Entity locks are per key and are held by a unit of
// work from the first GetForUpdate (or write) until Commit or Rollback. Lock acquisition
// honours the context, so a caller waiting on a busy entity gives up when its request does.
package memory

import (
	"context"
	"sync"
)

const (
	tableOrders    = "orders"
	tableTrackings = "trackings"
	tableAccounts  = "accounts"
	tablePromos    = "promo_codes"
	tableDrivers   = "drivers"
	tableOutbox    = "outbox"
)

// Store holds the committed state shared by all units of work.
type Store struct {
	mu          sync.RWMutex
	tables      map[string]map[string][]byte
	outboxOrder []string

	locks *lockTable
}

func NewStore() *Store {
	return &Store{
		tables: map[string]map[string][]byte{
			tableOrders:    {},
			tableTrackings: {},
			tableAccounts:  {},
			tablePromos:    {},
			tableDrivers:   {},
			tableOutbox:    {},
		},
		locks: newLockTable(),
	}
}

func (s *Store) read(table, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.tables[table][key]
	return row, ok
}

func (s *Store) scan(table string) map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.tables[table]))
	for k, v := range s.tables[table] {
		out[k] = v
	}
	return out
}

func (s *Store) pendingOutbox() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.outboxOrder...)
}

// apply publishes staged rows. Sent outbox messages leave the relay queue; their rows
// stay readable.
func (s *Store) apply(staged map[string]map[string][]byte, outboxAppends []string, outboxSent map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for table, rows := range staged {
		for k, v := range rows {
			s.tables[table][k] = v
		}
	}
	s.outboxOrder = append(s.outboxOrder, outboxAppends...)
	if len(outboxSent) == 0 {
		return
	}
	kept := s.outboxOrder[:0]
	for _, key := range s.outboxOrder {
		if _, sent := outboxSent[key]; !sent {
			kept = append(kept, key)
		}
	}
	clear(s.outboxOrder[len(kept):])
	s.outboxOrder = kept
}

func (s *Store) queuedOutbox() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.outboxOrder)
}

// lockTable hands out one single-slot semaphore per entity key.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[string]chan struct{})}
}

func (l *lockTable) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

func (l *lockTable) acquire(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case l.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *lockTable) tryAcquire(key string) bool {
	select {
	case l.slot(key) <- struct{}{}:
		return true
	default:
		return false
	}
}

func (l *lockTable) release(key string) {
	select {
	case <-l.slot(key):
	default:
	}
}
