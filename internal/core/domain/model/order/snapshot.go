package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Snapshot is the flat, serializable state of an Order used by repositories.
type Snapshot struct {
	ID               kernel.UUID     `json:"id"`
	Number           string          `json:"orderNumber"`
	CustomerID       kernel.UUID     `json:"customerId"`
	Status           Status          `json:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Items            []ItemSnapshot  `json:"items"`
	Subtotal         kernel.Money    `json:"subtotal"`
	Discount         kernel.Money    `json:"discount"`
	DeliveryFee      kernel.Money    `json:"deliveryFee"`
	VATRate          decimal.Decimal `json:"vatRate"`
	VATAmount        kernel.Money    `json:"vatAmount"`
	Total            kernel.Money    `json:"total"`
	PromoCode        string          `json:"promoCode,omitempty"`
	RefundedAmount   kernel.Money    `json:"refundedAmount"`
	AddressLine      string          `json:"addressLine"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	History          []HistoryEntry  `json:"statusHistory"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Snapshot captures the current state of the order.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item.snapshot())
	}

	s := Snapshot{
		ID:               o.id,
		Number:           o.number,
		CustomerID:       o.customerID,
		Status:           o.status,
		PaymentStatus:    o.paymentStatus,
		PaymentMethod:    o.paymentMethod,
		PaymentReference: o.paymentReference,
		Items:            items,
		Subtotal:         o.totals.Subtotal,
		Discount:         o.totals.Discount,
		DeliveryFee:      o.totals.DeliveryFee,
		VATRate:          o.totals.VATRate,
		VATAmount:        o.totals.VATAmount,
		Total:            o.totals.Total,
		PromoCode:        o.promoCode,
		RefundedAmount:   o.refundedAmount,
		AddressLine:      o.address.line,
		History:          o.History(),
		CreatedAt:        o.createdAt,
	}
	if loc := o.address.location; loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		s.Latitude, s.Longitude = &lat, &lon
	}
	return s
}

// RestoreOrder reconstructs an Order from persisted state. Every invariant is checked
// again; a record that violates one is rejected rather than loaded. The restored order
// carries no domain events and treats its whole history as already persisted.
func RestoreOrder(s Snapshot) (*Order, error) {
	var errList []error
	errList = append(errList, s.ID.Validate(), s.CustomerID.Validate(), s.Status.Validate(), s.PaymentStatus.Validate())
	if s.Number == "" {
		errList = append(errList, errs.NewValueIsRequiredError("orderNumber"))
	}
	method, err := ParsePaymentMethod(string(s.PaymentMethod))
	errList = append(errList, err)

	items := make([]Item, 0, len(s.Items))
	for _, is := range s.Items {
		item, itemErr := restoreItem(is)
		errList = append(errList, itemErr)
		items = append(items, item)
	}
	if len(items) == 0 {
		errList = append(errList, ErrItemsAreRequired)
	}

	totals := Totals{
		Subtotal:    s.Subtotal,
		Discount:    s.Discount,
		DeliveryFee: s.DeliveryFee,
		VATRate:     s.VATRate,
		VATAmount:   s.VATAmount,
		Total:       s.Total,
	}
	errList = append(errList, totals.Validate())

	var location *kernel.GeoPoint
	if s.Latitude != nil && s.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*s.Latitude, *s.Longitude)
		errList = append(errList, pointErr)
		location = &p
	}
	address, addrErr := NewAddress(s.AddressLine, location)
	errList = append(errList, addrErr)

	errList = append(errList, validateHistory(s.History, s.Status))
	if s.RefundedAmount.IsNegative() || s.RefundedAmount.GreaterThan(s.Total) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("refundedAmount", s.RefundedAmount, "0.00", s.Total))
	}

	if err = errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Order{
		id:               s.ID,
		number:           s.Number,
		customerID:       s.CustomerID,
		status:           s.Status,
		paymentStatus:    s.PaymentStatus,
		paymentMethod:    method,
		paymentReference: s.PaymentReference,
		items:            items,
		totals:           totals,
		promoCode:        s.PromoCode,
		refundedAmount:   s.RefundedAmount,
		address:          address,
		history:          append([]HistoryEntry(nil), s.History...),
		persistedHistory: len(s.History),
		createdAt:        s.CreatedAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func validateHistory(history []HistoryEntry, current Status) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("statusHistory")
	}
	if history[0].Status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("first entry is %s, expected pending", history[0].Status))
	}
	for i := 1; i < len(history); i++ {
		prev, next := history[i-1].Status, history[i].Status
		if !prev.CanTransitionTo(next) && !(prev == Delivered && next == Refunded) {
			return errs.NewValueIsInvalidErrorWithCause("statusHistory",
				errs.NewIllegalTransitionError("order", prev.String(), next.String()))
		}
	}
	if last := history[len(history)-1].Status; last != current {
		return errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last entry is %s, order is %s", last, current))
	}
	return nil
}
