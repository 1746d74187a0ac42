package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one line of a checkout request.
type OrderLine struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice kernel.Money
}

// CreateOrderCommand represents a checkout: the customer's lines, delivery address,
// payment choice and an optional promo code.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), actor, actor.ID(),
//	    []OrderLine{{ProductID: "ribeye", Name: "Ribeye", Quantity: decimal.NewFromInt(2), UnitPrice: price}},
//	    "1 Butcher Lane", nil, "card", "auth-123", "SPRING10",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	actor            kernel.Actor
	customerID       kernel.UUID
	items            []order.Item
	address          order.Address
	paymentMethod    order.PaymentMethod
	paymentReference string
	promoCode        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the checkout. Every line must carry a product, a positive
// quantity and a non-negative price; the address line is required.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	customerID kernel.UUID,
	lines []OrderLine,
	addressLine string,
	location *kernel.GeoPoint,
	paymentMethod string,
	paymentReference string,
	promoCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		paymentReference: paymentReference,
		promoCode:        order.NormalizePromoCode(promoCode),
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setCustomerID(customerID),
		cmd.setItems(lines),
		cmd.setAddress(addressLine, location),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CreateOrderCommand) PaymentReference() string {
	return c.paymentReference
}

// PromoCode returns the normalized code, or "" when none was entered.
func (c CreateOrderCommand) PromoCode() string {
	return c.promoCode
}

// Subtotal sums the line totals.
func (c CreateOrderCommand) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range c.items {
		subtotal = subtotal.Add(item.TotalPrice())
	}
	return subtotal
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return order.ErrItemsAreRequired
	}

	items := make([]order.Item, 0, len(lines))
	var errList []error
	for _, line := range lines {
		item, err := order.NewItem(line.ProductID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setAddress(line string, location *kernel.GeoPoint) error {
	address, err := order.NewAddress(line, location)
	if err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method string) error {
	parsed, err := order.ParsePaymentMethod(method)
	if err != nil {
		return err
	}

	c.paymentMethod = parsed
	return nil
}
