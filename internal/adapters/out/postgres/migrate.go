package postgres

import (
	"context"

	"storefront/internal/adapters/out/postgres/driverrepo"
	"storefront/internal/adapters/out/postgres/ledgerrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/outboxrepo"
	"storefront/internal/adapters/out/postgres/promorepo"
	"storefront/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the adapter, children before parents.
var Tables = []string{
	"order_items",
	"order_status_history",
	"orders",
	"tracking_timeline",
	"trackings",
	"ledger_transactions",
	"ledger_accounts",
	"promo_codes",
	"drivers",
	"outbox_messages",
}

// Migrate creates or updates the schema for all repositories.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&trackingrepo.TrackingDTO{},
		&trackingrepo.TimelineDTO{},
		&ledgerrepo.AccountDTO{},
		&ledgerrepo.TransactionDTO{},
		&promorepo.PromoCodeDTO{},
		&driverrepo.DriverDTO{},
		&outboxrepo.MessageDTO{},
	)
}
