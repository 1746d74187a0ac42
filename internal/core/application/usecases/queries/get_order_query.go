// Package queries contains read operations for retrieving system state.
// Queries never lock and never write; they return read models shaped for the
// HTTP adapter instead of domain aggregates.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its items, totals and status history.
//
// Customers see their own orders, drivers the orders they deliver, back office staff
// every order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderQueryHandler(uowFactory)
//
//	response, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderResponse is the full read model of an order.
type OrderResponse struct {
	ID               kernel.UUID           `json:"id"`
	Number           string                `json:"number"`
	CustomerID       kernel.UUID           `json:"customerId"`
	Status           order.Status          `json:"status"`
	PaymentStatus    order.PaymentStatus   `json:"paymentStatus"`
	PaymentMethod    order.PaymentMethod   `json:"paymentMethod"`
	PaymentReference string                `json:"paymentReference,omitempty"`
	Items            []OrderItemResponse   `json:"items"`
	Subtotal         kernel.Money          `json:"subtotal"`
	Discount         kernel.Money          `json:"discount"`
	PromoCode        string                `json:"promoCode,omitempty"`
	DeliveryFee      kernel.Money          `json:"deliveryFee"`
	VATRate          decimal.Decimal       `json:"vatRate"`
	VATAmount        kernel.Money          `json:"vatAmount"`
	Total            kernel.Money          `json:"total"`
	RefundedAmount   kernel.Money          `json:"refundedAmount"`
	Address          string                `json:"address"`
	Location         *LocationResponse     `json:"location,omitempty"`
	History          []OrderStatusResponse `json:"history"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type OrderItemResponse struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  kernel.Money    `json:"unitPrice"`
	TotalPrice kernel.Money    `json:"totalPrice"`
}

type OrderStatusResponse struct {
	Status    order.Status `json:"status"`
	ChangedAt time.Time    `json:"changedAt"`
	ChangedBy string       `json:"changedBy"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func newLocationResponse(p *kernel.GeoPoint) *LocationResponse {
	if p == nil {
		return nil
	}
	return &LocationResponse{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

func newOrderResponse(o *order.Order) OrderResponse {
	totals := o.Totals()
	response := OrderResponse{
		ID:               o.ID(),
		Number:           o.Number(),
		CustomerID:       o.CustomerID(),
		Status:           o.Status(),
		PaymentStatus:    o.PaymentStatus(),
		PaymentMethod:    o.PaymentMethod(),
		PaymentReference: o.PaymentReference(),
		Items:            make([]OrderItemResponse, 0, len(o.Items())),
		Subtotal:         totals.Subtotal,
		Discount:         totals.Discount,
		PromoCode:        o.PromoCode(),
		DeliveryFee:      totals.DeliveryFee,
		VATRate:          totals.VATRate,
		VATAmount:        totals.VATAmount,
		Total:            totals.Total,
		RefundedAmount:   o.RefundedAmount(),
		Address:          o.Address().Line(),
		Location:         newLocationResponse(o.Address().Location()),
		History:          make([]OrderStatusResponse, 0, len(o.History())),
		CreatedAt:        o.CreatedAt(),
	}
	for _, item := range o.Items() {
		response.Items = append(response.Items, OrderItemResponse{
			ProductID:  item.ProductID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			TotalPrice: item.TotalPrice(),
		})
	}
	for _, entry := range o.History() {
		response.History = append(response.History, OrderStatusResponse(entry))
	}
	return response
}
