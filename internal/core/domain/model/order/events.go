package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Event is a domain event raised by the Order aggregate. Events are collected on the
// aggregate and handed to the application layer, which applies ledger side effects and
// writes notifications in the same unit of work as the order itself.
type Event interface {
	OrderID() kernel.UUID
	EventName() string
}

// StatusChanged is raised for every successful status transition.
type StatusChanged struct {
	Order      kernel.UUID
	Number     string
	CustomerID kernel.UUID
	OldStatus  Status
	NewStatus  Status
	ChangedBy  string
	ChangedAt  time.Time
}

func (e StatusChanged) OrderID() kernel.UUID { return e.Order }
func (e StatusChanged) EventName() string    { return "order.status_changed" }

// RefundDue asks for captured money to be returned to the customer, either to the
// wallet or through the payment gateway depending on Method.
type RefundDue struct {
	Order            kernel.UUID
	Number           string
	CustomerID       kernel.UUID
	Amount           kernel.Money
	Method           PaymentMethod
	PaymentReference string
	Reason           string
}

func (e RefundDue) OrderID() kernel.UUID { return e.Order }
func (e RefundDue) EventName() string    { return "order.refund_due" }

// CashbackEarned asks for a wallet credit after delivery.
type CashbackEarned struct {
	Order      kernel.UUID
	Number     string
	CustomerID kernel.UUID
	Amount     kernel.Money
}

func (e CashbackEarned) OrderID() kernel.UUID { return e.Order }
func (e CashbackEarned) EventName() string    { return "order.cashback_earned" }

// LoyaltyPointsEarned asks for loyalty points to be awarded after delivery.
type LoyaltyPointsEarned struct {
	Order      kernel.UUID
	Number     string
	CustomerID kernel.UUID
	Points     int64
}

func (e LoyaltyPointsEarned) OrderID() kernel.UUID { return e.Order }
func (e LoyaltyPointsEarned) EventName() string    { return "order.loyalty_points_earned" }

// Placed is raised once when the order is created.
type Placed struct {
	Order      kernel.UUID
	Number     string
	CustomerID kernel.UUID
	Total      kernel.Money
	PlacedAt   time.Time
}

func (e Placed) OrderID() kernel.UUID { return e.Order }
func (e Placed) EventName() string    { return "order.placed" }
