// Package ledgerrepo persists customer wallets. The account row carries the balance and
// loyalty counters; "ledger_transactions" is append-only and its amounts always sum to
// the balance.
package ledgerrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountDTO struct {
	CustomerID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Balance               decimal.Decimal  `gorm:"type:numeric(12,2);not null;check:balance >= 0"`
	LoyaltyPoints         int64            `gorm:"not null;check:loyalty_points >= 0"`
	LoyaltyLifetimeEarned int64            `gorm:"not null"`
	CreatedAt             time.Time        `gorm:"not null"`
	Transactions          []TransactionDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

func (AccountDTO) TableName() string {
	return "ledger_accounts"
}

type TransactionDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_tx_seq"`
	Seq         int             `gorm:"not null;uniqueIndex:idx_ledger_tx_seq"`
	Type        string          `gorm:"type:varchar(32);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text;not null"`
	Reference   string          `gorm:"type:varchar(255);index"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (TransactionDTO) TableName() string {
	return "ledger_transactions"
}

func fromDomain(a *ledger.Account) AccountDTO {
	return AccountDTO{
		CustomerID:            a.CustomerID().Bytes(),
		Balance:               a.Balance().Decimal(),
		LoyaltyPoints:         a.LoyaltyPoints(),
		LoyaltyLifetimeEarned: a.LoyaltyLifetimeEarned(),
		CreatedAt:             a.CreatedAt(),
	}
}

func transactionsFromDomain(customerID kernel.UUID, offset int, txs []ledger.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, 0, len(txs))
	for i, tx := range txs {
		dtos = append(dtos, TransactionDTO{
			ID:          tx.ID.Bytes(),
			CustomerID:  customerID.Bytes(),
			Seq:         offset + i,
			Type:        string(tx.Type),
			Amount:      tx.Amount.Decimal(),
			Description: tx.Description,
			Reference:   tx.Reference,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return dtos
}

// toDomain rebuilds the account; RestoreAccount rejects rows whose balance does not
// match the transaction sum.
func toDomain(dto AccountDTO) (*ledger.Account, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	txs := make([]ledger.Transaction, 0, len(dto.Transactions))
	for _, t := range dto.Transactions {
		id, idErr := kernel.UUIDFromBytes(t.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		txs = append(txs, ledger.Transaction{
			ID:          id,
			Type:        ledger.TransactionType(t.Type),
			Amount:      kernel.NewMoney(t.Amount),
			Description: t.Description,
			Reference:   t.Reference,
			CreatedAt:   t.CreatedAt,
		})
	}

	return ledger.RestoreAccount(ledger.Snapshot{
		CustomerID:            customerID,
		Balance:               kernel.NewMoney(dto.Balance),
		LoyaltyPoints:         dto.LoyaltyPoints,
		LoyaltyLifetimeEarned: dto.LoyaltyLifetimeEarned,
		Transactions:          txs,
		CreatedAt:             dto.CreatedAt,
	})
}
