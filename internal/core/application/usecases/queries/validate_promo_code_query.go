package queries

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrValidatePromoCodeQueryIsNotConstructed = errors.New(
		"ValidatePromoCodeQuery must be created via NewValidatePromoCodeQuery constructor",
	)
)

// ValidatePromoCodeQuery previews the discount a code gives on a subtotal. It never
// consumes the code, so repeating it returns the same answer.
type ValidatePromoCodeQuery struct {
	code     string
	subtotal kernel.Money

	guard guard.ConstructorGuard
}

func NewValidatePromoCodeQuery(code string, subtotal kernel.Money) (ValidatePromoCodeQuery, error) {
	code = promo.Normalize(code)
	var errList []error
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if subtotal.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("subtotal", fmt.Errorf("%s is negative", subtotal)))
	}
	if err := errors.Join(errList...); err != nil {
		return ValidatePromoCodeQuery{}, err
	}
	return ValidatePromoCodeQuery{
		code:     code,
		subtotal: subtotal,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ValidatePromoCodeQuery) Validate() error {
	return q.guard.Validate(ErrValidatePromoCodeQueryIsNotConstructed)
}

func (q ValidatePromoCodeQuery) Code() string           { return q.code }
func (q ValidatePromoCodeQuery) Subtotal() kernel.Money { return q.subtotal }

type PromoCodeResponse struct {
	Code     string       `json:"code"`
	Subtotal kernel.Money `json:"subtotal"`
	Discount kernel.Money `json:"discount"`
}
