package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemsAreRequired = errs.NewValueIsRequiredError("items")

// Item is an order line. Quantity may be fractional for goods sold by weight.
type Item struct {
	productID  string
	name       string
	quantity   decimal.Decimal
	unitPrice  kernel.Money
	totalPrice kernel.Money
}

// NewItem validates a line and computes its total as round2(quantity × unitPrice).
func NewItem(productID, name string, quantity decimal.Decimal, unitPrice kernel.Money) (Item, error) {
	var errList []error
	if strings.TrimSpace(productID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productId"))
	}
	if !quantity.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productID:  productID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: unitPrice.Mul(quantity),
	}, nil
}

func (i Item) ProductID() string         { return i.productID }
func (i Item) Name() string              { return i.name }
func (i Item) Quantity() decimal.Decimal { return i.quantity }
func (i Item) UnitPrice() kernel.Money   { return i.unitPrice }
func (i Item) TotalPrice() kernel.Money  { return i.totalPrice }

// ItemSnapshot is the persisted form of an Item.
type ItemSnapshot struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  kernel.Money    `json:"unitPrice"`
	TotalPrice kernel.Money    `json:"totalPrice"`
}

func (i Item) snapshot() ItemSnapshot {
	return ItemSnapshot{
		ProductID:  i.productID,
		Name:       i.name,
		Quantity:   i.quantity,
		UnitPrice:  i.unitPrice,
		TotalPrice: i.totalPrice,
	}
}

func restoreItem(s ItemSnapshot) (Item, error) {
	item, err := NewItem(s.ProductID, s.Name, s.Quantity, s.UnitPrice)
	if err != nil {
		return Item{}, err
	}
	if !item.totalPrice.Equal(s.TotalPrice) {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s does not match %s x %s", s.TotalPrice, s.Quantity, s.UnitPrice))
	}
	return item, nil
}
