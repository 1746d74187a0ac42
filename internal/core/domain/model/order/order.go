package order

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

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrPaymentNotSettled is the cause reported when a refund is requested for an order
	// whose payment was never captured.
	ErrPaymentNotSettled = errors.New("payment is not captured")
	// ErrNothingToSettle is returned when a refund settlement is recorded without a pending refund.
	ErrNothingToSettle = errors.New("no refund to settle")
)

// HistoryEntry is one immutable row of an order's status history.
type HistoryEntry struct {
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy"`
}

// Checkout carries everything the customer decided at checkout.
type Checkout struct {
	CustomerID       kernel.UUID
	Items            []Item
	Discount         kernel.Money
	PromoCode        string
	DeliveryFee      kernel.Money
	VATRate          decimal.Decimal
	PaymentMethod    PaymentMethod
	PaymentReference string
	Address          Address
}

// Order is the aggregate root of the order lifecycle. It owns the status machine, the
// payment status, the priced lines and the append-only status history.
//
// Order follows these invariants:
//   - Totals satisfy Total == Subtotal - Discount + DeliveryFee + VATAmount
//   - Status only changes through Transition and Refund; terminal statuses never change
//   - History is append-only and its last entry always carries the current status
//   - The order number is assigned once at construction
//
// An Order is not safe for concurrent use; callers serialize access per order through
// the unit of work's entity lock.
type Order struct {
	id               kernel.UUID
	number           string
	customerID       kernel.UUID
	status           Status
	paymentStatus    PaymentStatus
	paymentMethod    PaymentMethod
	paymentReference string
	items            []Item
	totals           Totals
	promoCode        string
	refundedAmount   kernel.Money
	address          Address
	history          []HistoryEntry
	persistedHistory int
	createdAt        time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places a new order in Pending status.
//
// Parameters:
//   - id: unique identifier for the order
//   - checkout: customer, priced lines, discount, fees and payment choice
//   - actor: the customer placing their own order, or back-office staff placing it for them
//   - now: placement time, recorded as the first history entry
//
// Returns:
//   - *Order: the placed order with a Placed event recorded
//   - error: validation errors joined together, or *errs.UnauthorizedError
//
// Card orders that arrive with a gateway authorisation reference start with payment
// status Authorized; everything else starts Pending.
func NewOrder(id kernel.UUID, checkout Checkout, actor kernel.Actor, now time.Time) (*Order, error) {
	if err := errors.Join(id.Validate(), checkout.CustomerID.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	if !actor.IsBackOffice() && !(actor.IsCustomer() && actor.ID().IsEqual(checkout.CustomerID)) {
		return nil, errs.NewUnauthorizedError(actor.ID().String(), "place an order for another customer")
	}

	method, methodErr := ParsePaymentMethod(string(checkout.PaymentMethod))
	totals, totalsErr := CalculateTotals(checkout.Items, checkout.Discount, checkout.DeliveryFee, checkout.VATRate)
	if err := errors.Join(methodErr, totalsErr, validateAddress(checkout.Address)); err != nil {
		return nil, err
	}

	paymentStatus := PaymentPending
	if method == PaymentCard && checkout.PaymentReference != "" {
		paymentStatus = PaymentAuthorized
	}

	o := &Order{
		id:               id,
		number:           NewOrderNumber(id, now),
		customerID:       checkout.CustomerID,
		status:           Pending,
		paymentStatus:    paymentStatus,
		paymentMethod:    method,
		paymentReference: checkout.PaymentReference,
		items:            append([]Item(nil), checkout.Items...),
		totals:           totals,
		promoCode:        NormalizePromoCode(checkout.PromoCode),
		refundedAmount:   kernel.ZeroMoney(),
		address:          checkout.Address,
		createdAt:        now,
		guard:            guard.NewConstructorGuard(),
	}
	o.appendHistory(Pending, actor, now)
	o.raise(Placed{
		Order:      o.id,
		Number:     o.number,
		CustomerID: o.customerID,
		Total:      o.totals.Total,
		PlacedAt:   now,
	})

	return o, nil
}

// NewOrderNumber derives the human-readable order number: ORD-<yyyymmdd>-<6 hex of id>.
func NewOrderNumber(id kernel.UUID, at time.Time) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("ORD-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(hex[:6]))
}

// NormalizePromoCode trims and upper-cases a promo code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PaymentReference() string     { return o.paymentReference }
func (o *Order) Totals() Totals               { return o.totals }
func (o *Order) Total() kernel.Money          { return o.totals.Total }
func (o *Order) PromoCode() string            { return o.promoCode }
func (o *Order) RefundedAmount() kernel.Money { return o.refundedAmount }
func (o *Order) Address() Address             { return o.address }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// PendingHistory returns the history entries appended since the order was constructed
// or restored and not yet marked persisted.
func (o *Order) PendingHistory() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history[o.persistedHistory:]...)
}

// MarkPersisted records that every history entry has been written to storage.
func (o *Order) MarkPersisted() {
	o.persistedHistory = len(o.history)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []Event {
	return append([]Event(nil), o.events...)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// Clone returns an independent copy, pending events and unpersisted history included.
// Services use it to try a change and discard it when a coupled change fails.
func (o *Order) Clone() *Order {
	c := *o
	c.items = append([]Item(nil), o.items...)
	c.history = append([]HistoryEntry(nil), o.history...)
	c.events = append([]Event(nil), o.events...)
	return &c
}

// IsTerminal reports whether the order can no longer change fulfilment status.
func (o *Order) IsTerminal() bool {
	return o.status.IsTerminal()
}

// Transition moves the order to next following the transition table.
//
// Parameters:
//   - next: requested status
//   - actor: who requests it; back office may perform any legal transition, a customer
//     may cancel their own pending order, a driver may move the order out for delivery
//     or to delivered (through delivery tracking)
//   - now: transition time recorded in the history
//   - policy: cashback and loyalty configuration applied on delivery
//
// Returns:
//   - nil on success; the order gains one history entry and a StatusChanged event,
//     plus RefundDue when a captured order is cancelled and CashbackEarned /
//     LoyaltyPointsEarned when delivered under an enabled policy
//   - *errs.IllegalTransitionError if next is not allowed from the current status
//   - *errs.UnauthorizedError if the actor may not request it
//
// On error the order is left unmodified.
func (o *Order) Transition(next Status, actor kernel.Actor, now time.Time, policy RewardPolicy) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}

	newStatus, err := o.status.Transition(next)
	if err != nil {
		return err
	}

	if err = o.authorizeTransition(newStatus, actor); err != nil {
		return err
	}

	o.moveTo(newStatus, actor, now)

	switch newStatus {
	case Cancelled:
		if o.paymentStatus.IsSettled() {
			o.requestRefund(o.totals.Total.Sub(o.refundedAmount), "order cancelled")
		}
	case Delivered:
		o.onDelivered(policy)
	default:
	}

	return nil
}

// Refund returns money for a delivered order. A nil amount refunds everything not yet
// refunded. When the cumulative refunds reach the order total the order moves to the
// terminal Refunded status; a partial refund leaves it Delivered.
//
// Only admins may refund. The order must be Delivered with a captured payment.
// A RefundDue event is raised; the payment status changes when SettleRefund is called.
func (o *Order) Refund(amount *kernel.Money, reason string, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.ID().String(), "refund an order")
	}
	if o.status != Delivered {
		return errs.NewIllegalTransitionError("order", o.status.String(), Refunded.String())
	}
	if !o.paymentStatus.IsSettled() {
		return errs.NewIllegalTransitionErrorWithCause("order", o.status.String(), Refunded.String(), ErrPaymentNotSettled)
	}

	remaining := o.totals.Total.Sub(o.refundedAmount)
	refund := remaining
	if amount != nil {
		if !amount.IsPositive() || amount.GreaterThan(remaining) {
			return errs.NewValueIsOutOfRangeError("amount", *amount, "0.01", remaining)
		}
		refund = *amount
	}

	if reason == "" {
		reason = "order refunded"
	}
	o.requestRefund(refund, reason)

	if o.refundedAmount.Equal(o.totals.Total) {
		o.moveTo(Refunded, actor, now)
	}
	return nil
}

// SettleRefund records the outcome of returning refunded money. Success moves the payment
// to Refunded (or PartiallyRefunded while part of the total is still kept); failure moves
// it to Failed so that staff can settle it manually.
func (o *Order) SettleRefund(succeeded bool) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.refundedAmount.IsPositive() {
		return ErrNothingToSettle
	}
	if !succeeded {
		o.paymentStatus = PaymentFailed
		return nil
	}
	if o.refundedAmount.Equal(o.totals.Total) {
		o.paymentStatus = PaymentRefunded
	} else {
		o.paymentStatus = PaymentPartiallyRefunded
	}
	return nil
}

// AuthorizePayment stores the gateway authorisation reference.
func (o *Order) AuthorizePayment(reference string) error {
	if err := o.ensurePayable(PaymentAuthorized); err != nil {
		return err
	}
	newStatus, err := o.paymentStatus.Authorize()
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	o.paymentReference = reference
	return nil
}

// CapturePayment records that the money was taken. An empty reference keeps the existing one.
func (o *Order) CapturePayment(reference string) error {
	if err := o.ensurePayable(PaymentCaptured); err != nil {
		return err
	}
	newStatus, err := o.paymentStatus.Capture()
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	if reference != "" {
		o.paymentReference = reference
	}
	return nil
}

// CaptureCancelled records a capture that the gateway completed after the order was
// cancelled. The payment becomes Captured and everything not yet refunded is returned
// at once through a RefundDue event.
func (o *Order) CaptureCancelled(reference string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Cancelled {
		return errs.NewIllegalTransitionErrorWithCause("payment", o.paymentStatus.String(), PaymentCaptured.String(),
			fmt.Errorf("order is %s, not cancelled", o.status))
	}
	newStatus, err := o.paymentStatus.Capture()
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	if reference != "" {
		o.paymentReference = reference
	}
	o.requestRefund(o.totals.Total.Sub(o.refundedAmount), "order cancelled during payment capture")
	return nil
}

// FailPayment records a failed capture.
func (o *Order) FailPayment() error {
	if err := o.Validate(); err != nil {
		return err
	}
	newStatus, err := o.paymentStatus.Fail()
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	return nil
}

func (o *Order) ensurePayable(target PaymentStatus) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status == Cancelled || o.status == Refunded {
		return errs.NewIllegalTransitionErrorWithCause("payment", o.paymentStatus.String(), target.String(),
			fmt.Errorf("order is %s", o.status))
	}
	return nil
}

func (o *Order) authorizeTransition(next Status, actor kernel.Actor) error {
	switch {
	case actor.IsBackOffice():
		return nil
	case actor.IsCustomer() && actor.ID().IsEqual(o.customerID) && next == Cancelled && o.status == Pending:
		return nil
	case actor.IsDriver() && (next == OutForDelivery || next == Delivered):
		return nil
	default:
		return errs.NewUnauthorizedError(actor.ID().String(), fmt.Sprintf("move order %s to %s", o.number, next))
	}
}

func (o *Order) moveTo(next Status, actor kernel.Actor, now time.Time) {
	old := o.status
	o.status = next
	o.appendHistory(next, actor, now)
	o.raise(StatusChanged{
		Order:      o.id,
		Number:     o.number,
		CustomerID: o.customerID,
		OldStatus:  old,
		NewStatus:  next,
		ChangedBy:  actor.Ref(),
		ChangedAt:  now,
	})
}

func (o *Order) onDelivered(policy RewardPolicy) {
	if o.paymentMethod == PaymentCOD {
		if captured, err := o.paymentStatus.Capture(); err == nil {
			o.paymentStatus = captured
		}
	}

	if cashback := policy.cashbackFor(o.totals.Total); cashback.IsPositive() {
		o.raise(CashbackEarned{Order: o.id, Number: o.number, CustomerID: o.customerID, Amount: cashback})
	}
	if points := policy.pointsFor(o.totals.Total); points > 0 {
		o.raise(LoyaltyPointsEarned{Order: o.id, Number: o.number, CustomerID: o.customerID, Points: points})
	}
}

func (o *Order) requestRefund(amount kernel.Money, reason string) {
	if !amount.IsPositive() {
		return
	}
	o.refundedAmount = o.refundedAmount.Add(amount)
	o.raise(RefundDue{
		Order:            o.id,
		Number:           o.number,
		CustomerID:       o.customerID,
		Amount:           amount,
		Method:           o.paymentMethod,
		PaymentReference: o.paymentReference,
		Reason:           reason,
	})
}

func (o *Order) appendHistory(status Status, actor kernel.Actor, now time.Time) {
	o.history = append(o.history, HistoryEntry{Status: status, ChangedAt: now, ChangedBy: actor.Ref()})
}

func (o *Order) raise(e Event) {
	o.events = append(o.events, e)
}

func validateAddress(a Address) error {
	if strings.TrimSpace(a.line) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}
