package ledger

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeCredit          TransactionType = "credit"
	TypeDebit           TransactionType = "debit"
	TypeRefund          TransactionType = "refund"
	TypeTopUp           TransactionType = "topup"
	TypeCashback        TransactionType = "cashback"
	TypeAdminAdjustment TransactionType = "admin_adjustment"
)

// ParseTransactionType validates a persisted transaction type.
func ParseTransactionType(s string) (TransactionType, error) {
	switch tt := TransactionType(s); tt {
	case TypeCredit, TypeDebit, TypeRefund, TypeTopUp, TypeCashback, TypeAdminAdjustment:
		return tt, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("transaction type", fmt.Errorf("%q is not supported", s))
	}
}

// isCredit reports whether the type may be used with Account.Credit.
func (tt TransactionType) isCredit() bool {
	return tt == TypeCredit || tt == TypeRefund || tt == TypeTopUp || tt == TypeCashback
}

// Transaction is an immutable ledger entry. Amount is signed: credits are positive,
// debits negative, admin adjustments either.
type Transaction struct {
	ID          kernel.UUID     `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      kernel.Money    `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
