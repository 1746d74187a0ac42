package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var maxVATRate = decimal.NewFromInt(100)

// Totals holds the derived money figures of an order. The invariant
// Total == Subtotal - Discount + DeliveryFee + VATAmount holds for every value
// produced by CalculateTotals or accepted by Totals.Validate.
//
// VAT is charged on the discounted goods plus delivery:
// VATAmount = round2((Subtotal - Discount + DeliveryFee) × VATRate / 100).
type Totals struct {
	Subtotal    kernel.Money
	Discount    kernel.Money
	DeliveryFee kernel.Money
	VATRate     decimal.Decimal
	VATAmount   kernel.Money
	Total       kernel.Money
}

// CalculateTotals prices a set of items.
//
// Parameters:
//   - items: order lines, at least one
//   - discount: promo discount, between 0 and the subtotal
//   - deliveryFee: non-negative
//   - vatRate: percent between 0 and 100
func CalculateTotals(items []Item, discount, deliveryFee kernel.Money, vatRate decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, ErrItemsAreRequired
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice())
	}

	t := Totals{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		VATRate:     vatRate,
	}
	if err := t.validateInputs(); err != nil {
		return Totals{}, err
	}

	t.VATAmount = t.taxable().Percent(vatRate)
	t.Total = t.taxable().Add(t.VATAmount)
	return t, nil
}

// Validate checks the inputs and the derived invariant of restored totals.
func (t Totals) Validate() error {
	if err := t.validateInputs(); err != nil {
		return err
	}
	expected := t.taxable().Add(t.VATAmount)
	if !expected.Equal(t.Total) {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s != %s - %s + %s + %s", t.Total, t.Subtotal, t.Discount, t.DeliveryFee, t.VATAmount))
	}
	return nil
}

func (t Totals) taxable() kernel.Money {
	return t.Subtotal.Sub(t.Discount).Add(t.DeliveryFee)
}

func (t Totals) validateInputs() error {
	var errList []error
	if t.Discount.IsNegative() || t.Discount.GreaterThan(t.Subtotal) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("discount", t.Discount, "0.00", t.Subtotal))
	}
	if t.DeliveryFee.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"deliveryFee", fmt.Errorf("%s is negative", t.DeliveryFee)))
	}
	if t.VATRate.IsNegative() || t.VATRate.GreaterThan(maxVATRate) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("vatRate", t.VATRate, 0, 100))
	}
	return errors.Join(errList...)
}
