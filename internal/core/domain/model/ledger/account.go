package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount constructor")

// Account is a customer's wallet and loyalty balance.
//
// Account follows these invariants:
//   - Balance always equals the sum of all transaction amounts
//   - Balance never becomes negative as the result of a mutation
//   - A failed operation changes nothing
//   - LoyaltyLifetimeEarned never decreases
//   - Transactions are append-only
//
// Accounts are created lazily on first access and are never deleted. An Account is not
// safe for concurrent use; the unit of work holds the account lock for the whole
// read-modify-append sequence.
type Account struct {
	customerID            kernel.UUID
	balance               kernel.Money
	loyaltyPoints         int64
	loyaltyLifetimeEarned int64
	transactions          []Transaction
	persistedTransactions int
	createdAt             time.Time

	guard guard.ConstructorGuard
}

// NewAccount opens an empty account for a customer.
func NewAccount(customerID kernel.UUID, now time.Time) (*Account, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	return &Account{
		customerID: customerID,
		balance:    kernel.ZeroMoney(),
		createdAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) CustomerID() kernel.UUID {
	return a.customerID
}

func (a *Account) Balance() kernel.Money {
	return a.balance
}

func (a *Account) LoyaltyPoints() int64 {
	return a.loyaltyPoints
}

func (a *Account) LoyaltyLifetimeEarned() int64 {
	return a.loyaltyLifetimeEarned
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// Transactions returns a copy of the ledger, oldest first.
func (a *Account) Transactions() []Transaction {
	return append([]Transaction(nil), a.transactions...)
}

// PendingTransactions returns the transactions appended since the account was loaded.
func (a *Account) PendingTransactions() []Transaction {
	return append([]Transaction(nil), a.transactions[a.persistedTransactions:]...)
}

func (a *Account) MarkPersisted() {
	a.persistedTransactions = len(a.transactions)
}

// Credit adds money to the account.
//
// Parameters:
//   - amount: strictly positive
//   - tt: one of TypeCredit, TypeRefund, TypeTopUp, TypeCashback
//   - description: human readable, required
//   - reference: optional link to the source (order number, payment id)
func (a *Account) Credit(amount kernel.Money, tt TransactionType, description, reference string, now time.Time) (Transaction, error) {
	if err := a.Validate(); err != nil {
		return Transaction{}, err
	}
	var errList []error
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount)))
	}
	if !tt.isCredit() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("transaction type",
			fmt.Errorf("%q cannot be credited", tt)))
	}
	errList = append(errList, validateDescription(description))
	if err := errors.Join(errList...); err != nil {
		return Transaction{}, err
	}
	return a.append(tt, amount, description, reference, now), nil
}

// Debit takes money from the account.
//
// Returns:
//   - *errs.InsufficientFundsError matching errs.ErrInsufficientBalance when amount exceeds
//     the balance; nothing is appended in that case
func (a *Account) Debit(amount kernel.Money, description, reference string, now time.Time) (Transaction, error) {
	if err := a.Validate(); err != nil {
		return Transaction{}, err
	}
	if !amount.IsPositive() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if err := validateDescription(description); err != nil {
		return Transaction{}, err
	}
	if amount.GreaterThan(a.balance) {
		return Transaction{}, errs.NewInsufficientBalanceError(amount, a.balance)
	}
	return a.append(TypeDebit, amount.Neg(), description, reference, now), nil
}

// AdjustByAdmin corrects the balance by a signed amount. Negative adjustments follow the
// same rule as Debit.
func (a *Account) AdjustByAdmin(amount kernel.Money, reason string, actor kernel.Actor, now time.Time) (Transaction, error) {
	if err := errors.Join(a.Validate(), actor.Validate()); err != nil {
		return Transaction{}, err
	}
	if !actor.IsAdmin() {
		return Transaction{}, errs.NewUnauthorizedError(actor.ID().String(), "adjust a ledger balance")
	}
	if amount.IsZero() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("amount", errors.New("adjustment must not be zero"))
	}
	if err := validateDescription(reason); err != nil {
		return Transaction{}, err
	}
	if amount.IsNegative() && amount.Neg().GreaterThan(a.balance) {
		return Transaction{}, errs.NewInsufficientBalanceError(amount.Neg(), a.balance)
	}
	return a.append(TypeAdminAdjustment, amount, reason, actor.Ref(), now), nil
}

// AwardLoyaltyPoints adds points earned by a delivered order.
func (a *Account) AwardLoyaltyPoints(points int64) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if points <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d is not greater than 0", points))
	}
	a.loyaltyPoints += points
	a.loyaltyLifetimeEarned += points
	return nil
}

// RedeemLoyaltyPoints spends points.
//
// Returns:
//   - *errs.InsufficientFundsError matching errs.ErrInsufficientPoints when points exceed the
//     available points
func (a *Account) RedeemLoyaltyPoints(points int64) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if points <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d is not greater than 0", points))
	}
	if points > a.loyaltyPoints {
		return errs.NewInsufficientPointsError(points, a.loyaltyPoints)
	}
	a.loyaltyPoints -= points
	return nil
}

// ConvertLoyaltyPoints redeems points and credits their value to the wallet at pointValue
// per point. Both effects happen or neither does.
func (a *Account) ConvertLoyaltyPoints(points int64, pointValue decimal.Decimal, now time.Time) (Transaction, error) {
	if !pointValue.IsPositive() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("pointValue", fmt.Errorf("%s is not greater than 0", pointValue))
	}
	value := kernel.NewMoney(pointValue.Mul(decimal.NewFromInt(points)))
	if points > 0 && !value.IsPositive() {
		return Transaction{}, errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d points are worth nothing", points))
	}
	if err := a.RedeemLoyaltyPoints(points); err != nil {
		return Transaction{}, err
	}
	return a.append(TypeCredit, value, fmt.Sprintf("%d loyalty points redeemed", points), "", now), nil
}

func (a *Account) append(tt TransactionType, amount kernel.Money, description, reference string, now time.Time) Transaction {
	tx := Transaction{
		ID:          kernel.NewUUID(),
		Type:        tt,
		Amount:      amount,
		Description: description,
		Reference:   reference,
		CreatedAt:   now,
	}
	a.transactions = append(a.transactions, tx)
	a.balance = a.balance.Add(amount)
	return tx
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return errs.NewValueIsRequiredError("description")
	}
	return nil
}

// Snapshot is the flat, serializable state of an Account.
type Snapshot struct {
	CustomerID            kernel.UUID   `json:"customerId"`
	Balance               kernel.Money  `json:"balance"`
	LoyaltyPoints         int64         `json:"loyaltyPoints"`
	LoyaltyLifetimeEarned int64         `json:"loyaltyLifetimeEarned"`
	Transactions          []Transaction `json:"transactions"`
	CreatedAt             time.Time     `json:"createdAt"`
}

func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		CustomerID:            a.customerID,
		Balance:               a.balance,
		LoyaltyPoints:         a.loyaltyPoints,
		LoyaltyLifetimeEarned: a.loyaltyLifetimeEarned,
		Transactions:          a.Transactions(),
		CreatedAt:             a.createdAt,
	}
}

// RestoreAccount reconstructs an Account and re-checks that the stored balance equals the
// sum of its transactions.
func RestoreAccount(s Snapshot) (*Account, error) {
	if err := s.CustomerID.Validate(); err != nil {
		return nil, err
	}

	sum := kernel.ZeroMoney()
	for _, tx := range s.Transactions {
		if _, err := ParseTransactionType(string(tx.Type)); err != nil {
			return nil, err
		}
		sum = sum.Add(tx.Amount)
	}
	if !sum.Equal(s.Balance) {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance",
			fmt.Errorf("%s does not equal the transaction sum %s", s.Balance, sum))
	}
	if s.Balance.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%s is negative", s.Balance))
	}
	if s.LoyaltyPoints < 0 || s.LoyaltyPoints > s.LoyaltyLifetimeEarned {
		return nil, errs.NewValueIsOutOfRangeError("loyaltyPoints", s.LoyaltyPoints, 0, s.LoyaltyLifetimeEarned)
	}

	return &Account{
		customerID:            s.CustomerID,
		balance:               s.Balance,
		loyaltyPoints:         s.LoyaltyPoints,
		loyaltyLifetimeEarned: s.LoyaltyLifetimeEarned,
		transactions:          append([]Transaction(nil), s.Transactions...),
		persistedTransactions: len(s.Transactions),
		createdAt:             s.CreatedAt,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}
