package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get reads an account without locking. A customer without a row reads as a new, empty
// account that is not stored.
func (r *GormLedgerRepository) Get(ctx context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	account, err := r.find(ctx, r.db, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.NewAccount(customerID, now)
	}
	return account, err
}

// GetForUpdate creates the account row if it is missing and locks it. Concurrent first
// accesses race on the insert; ON CONFLICT makes the loser wait on the lock instead of
// failing.
func (r *GormLedgerRepository) GetForUpdate(ctx context.Context, customerID kernel.UUID, now time.Time) (*ledger.Account, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	empty, err := ledger.NewAccount(customerID, now)
	if err != nil {
		return nil, err
	}
	dto := fromDomain(empty)
	if err = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.find(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), customerID)
}

// Save writes the balance and loyalty counters and appends the new transactions.
func (r *GormLedgerRepository) Save(ctx context.Context, aggregate *ledger.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "loyalty_points", "loyalty_lifetime_earned"}),
	}).Create(&dto).Error
	if err != nil {
		return err
	}

	pending := aggregate.PendingTransactions()
	if len(pending) > 0 {
		offset := len(aggregate.Transactions()) - len(pending)
		txs := transactionsFromDomain(aggregate.CustomerID(), offset, pending)
		if err = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&txs).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.CustomerID(), aggregate)
	return nil
}

func (r *GormLedgerRepository) find(ctx context.Context, db *gorm.DB, customerID kernel.UUID) (*ledger.Account, error) {
	var dto AccountDTO
	err := db.WithContext(ctx).
		Preload("Transactions", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq") }).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}
