package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/outbox"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/core/ports"
)

type orderPlacedPayload struct {
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	Total       kernel.Money `json:"total"`
	PlacedAt    time.Time    `json:"placedAt"`
}

type orderStatusPayload struct {
	OrderID     kernel.UUID `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	OldStatus   string      `json:"oldStatus"`
	NewStatus   string      `json:"newStatus"`
	ChangedAt   time.Time   `json:"changedAt"`
}

type refundPayload struct {
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	Amount      kernel.Money `json:"amount"`
	Destination string       `json:"destination"`
	Reason      string       `json:"reason"`
}

type cashbackPayload struct {
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	Amount      kernel.Money `json:"amount"`
	Balance     kernel.Money `json:"balance"`
}

type loyaltyPayload struct {
	OrderID     kernel.UUID `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Points      int64       `json:"points"`
	Total       int64       `json:"totalPoints"`
}

type deliveryStatusPayload struct {
	OrderID   kernel.UUID `json:"orderId"`
	OldStatus string      `json:"oldStatus"`
	NewStatus string      `json:"newStatus"`
	Notes     string      `json:"notes,omitempty"`
	ChangedAt time.Time   `json:"changedAt"`
}

type driverAssignedPayload struct {
	OrderID    kernel.UUID `json:"orderId"`
	DriverID   kernel.UUID `json:"driverId"`
	AssignedAt time.Time   `json:"assignedAt"`
}

// sideEffects turns the domain events of one command into ledger entries and outbox
// messages written through the command's unit of work. Ledger accounts are locked on first
// use, after the order and tracking locks the caller already holds.
type sideEffects struct {
	uow ports.UnitOfWork
	now time.Time

	accounts    map[string]*ledger.Account
	messages    []outbox.Message
	cardRefunds []order.RefundDue
}

func newSideEffects(uow ports.UnitOfWork, now time.Time) *sideEffects {
	return &sideEffects{uow: uow, now: now, accounts: make(map[string]*ledger.Account)}
}

// applyOrderEvents consumes the order's events. Refunds to the wallet are credited and
// settled on the spot; card refunds are collected for the gateway.
func (s *sideEffects) applyOrderEvents(ctx context.Context, o *order.Order) error {
	events := o.DomainEvents()
	o.ClearDomainEvents()

	for _, event := range events {
		var err error
		switch e := event.(type) {
		case order.Placed:
			err = s.notify(e.CustomerID, outbox.KindOrderPlaced, orderPlacedPayload{
				OrderID: e.Order, OrderNumber: e.Number, Total: e.Total, PlacedAt: e.PlacedAt,
			})
		case order.StatusChanged:
			err = s.notify(e.CustomerID, outbox.KindOrderStatusChanged, orderStatusPayload{
				OrderID:     e.Order,
				OrderNumber: e.Number,
				OldStatus:   e.OldStatus.String(),
				NewStatus:   e.NewStatus.String(),
				ChangedAt:   e.ChangedAt,
			})
		case order.RefundDue:
			err = s.refund(ctx, o, e)
		case order.CashbackEarned:
			err = s.cashback(ctx, e)
		case order.LoyaltyPointsEarned:
			err = s.loyaltyPoints(ctx, e)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// applyTrackingEvents notifies the customer about delivery progress and the driver about
// assignments.
func (s *sideEffects) applyTrackingEvents(t *tracking.Tracking, customerID kernel.UUID) error {
	events := t.DomainEvents()
	t.ClearDomainEvents()

	for _, event := range events {
		switch e := event.(type) {
		case tracking.StatusChanged:
			payload := deliveryStatusPayload{
				OrderID:   e.Order,
				OldStatus: e.OldStatus.String(),
				NewStatus: e.NewStatus.String(),
				Notes:     e.Notes,
				ChangedAt: e.ChangedAt,
			}
			if err := s.notify(customerID, outbox.KindDeliveryStatusChanged, payload); err != nil {
				return err
			}
		case tracking.DriverAssigned:
			payload := driverAssignedPayload{OrderID: e.Order, DriverID: e.DriverID, AssignedAt: e.AssignedAt}
			if err := s.notify(e.DriverID, outbox.KindDriverAssigned, payload); err != nil {
				return err
			}
			if err := s.notify(customerID, outbox.KindDriverAssigned, payload); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *sideEffects) refund(ctx context.Context, o *order.Order, e order.RefundDue) error {
	if !e.Method.RefundsToWallet() {
		s.cardRefunds = append(s.cardRefunds, e)
		return nil
	}

	account, err := s.account(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	if _, err = account.Credit(e.Amount, ledger.TypeRefund, "Refund: "+e.Reason, e.Number, s.now); err != nil {
		return err
	}
	if err = o.SettleRefund(true); err != nil {
		return err
	}
	return s.notify(e.CustomerID, outbox.KindRefundIssued, refundPayload{
		OrderID:     e.Order,
		OrderNumber: e.Number,
		Amount:      e.Amount,
		Destination: "wallet",
		Reason:      e.Reason,
	})
}

func (s *sideEffects) cashback(ctx context.Context, e order.CashbackEarned) error {
	account, err := s.account(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	if _, err = account.Credit(e.Amount, ledger.TypeCashback, "Cashback for order "+e.Number, e.Number, s.now); err != nil {
		return err
	}
	return s.notify(e.CustomerID, outbox.KindCashbackCredited, cashbackPayload{
		OrderID: e.Order, OrderNumber: e.Number, Amount: e.Amount, Balance: account.Balance(),
	})
}

func (s *sideEffects) loyaltyPoints(ctx context.Context, e order.LoyaltyPointsEarned) error {
	account, err := s.account(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	if err = account.AwardLoyaltyPoints(e.Points); err != nil {
		return err
	}
	return s.notify(e.CustomerID, outbox.KindLoyaltyPointsEarned, loyaltyPayload{
		OrderID: e.Order, OrderNumber: e.Number, Points: e.Points, Total: account.LoyaltyPoints(),
	})
}

func (s *sideEffects) account(ctx context.Context, customerID kernel.UUID) (*ledger.Account, error) {
	if account, ok := s.accounts[customerID.String()]; ok {
		return account, nil
	}
	account, err := s.uow.LedgerRepository().GetForUpdate(ctx, customerID, s.now)
	if err != nil {
		return nil, err
	}
	s.accounts[customerID.String()] = account
	return account, nil
}

func (s *sideEffects) notify(recipientID kernel.UUID, kind outbox.Kind, payload any) error {
	message, err := outbox.NewMessage(recipientID, kind, payload, s.now)
	if err != nil {
		return err
	}
	s.messages = append(s.messages, message)
	return nil
}

// flush saves the touched accounts and writes the collected messages.
func (s *sideEffects) flush(ctx context.Context) error {
	for _, account := range s.accounts {
		if err := s.uow.LedgerRepository().Save(ctx, account); err != nil {
			return err
		}
	}
	if len(s.messages) == 0 {
		return nil
	}
	return s.uow.OutboxRepository().Add(ctx, s.messages...)
}
