package promo

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
	ErrPromoIsNotConstructed = errors.New("PromoCode must be created via NewPromoCode or RestorePromoCode constructor")

	ErrPromoDisabled       = errors.New("promo code is disabled")
	ErrPromoExpired        = errors.New("promo code has expired")
	ErrPromoBelowMinimum   = errors.New("order subtotal is below the promo minimum")
	ErrPromoUsageExhausted = errors.New("promo code usage is exhausted")
)

// DiscountType says how the discount value is applied.
type DiscountType string

const (
	Percent DiscountType = "percent"
	Fixed   DiscountType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// Terms are the configurable conditions of a promo code.
type Terms struct {
	Code     string
	Discount decimal.Decimal
	Type     DiscountType
	MinOrder *kernel.Money
	MaxUses  *int
	Expiry   *time.Time
	Enabled  bool
}

// PromoCode is a discount code with optional minimum order, usage cap and expiry.
// UsedCount never exceeds MaxUses.
type PromoCode struct {
	code      string
	discount  decimal.Decimal
	kind      DiscountType
	minOrder  *kernel.Money
	maxUses   *int
	usedCount int
	expiry    *time.Time
	enabled   bool

	guard guard.ConstructorGuard
}

// NewPromoCode validates terms and creates an unused code. The code is upper-cased.
func NewPromoCode(terms Terms) (*PromoCode, error) {
	return newPromoCode(terms, 0)
}

func newPromoCode(terms Terms, usedCount int) (*PromoCode, error) {
	code := Normalize(terms.Code)
	var errList []error
	if code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	switch terms.Type {
	case Percent:
		if !terms.Discount.IsPositive() || terms.Discount.GreaterThan(hundred) {
			errList = append(errList, errs.NewValueIsOutOfRangeError("discount", terms.Discount, 0, 100))
		}
	case Fixed:
		if !terms.Discount.IsPositive() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("discount",
				fmt.Errorf("%s is not greater than 0", terms.Discount)))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("type",
			fmt.Errorf("%q is not percent or fixed", terms.Type)))
	}
	if terms.MinOrder != nil && terms.MinOrder.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("minOrder",
			fmt.Errorf("%s is negative", terms.MinOrder)))
	}
	if terms.MaxUses != nil && *terms.MaxUses <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("maxUses",
			fmt.Errorf("%d is not greater than 0", *terms.MaxUses)))
	}
	if usedCount < 0 || (terms.MaxUses != nil && usedCount > *terms.MaxUses) {
		var maxUses any = "unlimited"
		if terms.MaxUses != nil {
			maxUses = *terms.MaxUses
		}
		errList = append(errList, errs.NewValueIsOutOfRangeError("usedCount", usedCount, 0, maxUses))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	p := &PromoCode{
		code:      code,
		discount:  terms.Discount,
		kind:      terms.Type,
		usedCount: usedCount,
		enabled:   terms.Enabled,
		guard:     guard.NewConstructorGuard(),
	}
	if terms.MinOrder != nil {
		m := *terms.MinOrder
		p.minOrder = &m
	}
	if terms.MaxUses != nil {
		n := *terms.MaxUses
		p.maxUses = &n
	}
	if terms.Expiry != nil {
		e := *terms.Expiry
		p.expiry = &e
	}
	return p, nil
}

// Normalize trims and upper-cases a code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (p *PromoCode) Validate() error {
	if p == nil {
		return ErrPromoIsNotConstructed
	}
	return p.guard.Validate(ErrPromoIsNotConstructed)
}

func (p *PromoCode) Code() string {
	return p.code
}

func (p *PromoCode) UsedCount() int {
	return p.usedCount
}

func (p *PromoCode) Enabled() bool {
	return p.enabled
}

// Terms returns the configured conditions.
func (p *PromoCode) Terms() Terms {
	t := Terms{Code: p.code, Discount: p.discount, Type: p.kind, Enabled: p.enabled}
	if p.minOrder != nil {
		m := *p.minOrder
		t.MinOrder = &m
	}
	if p.maxUses != nil {
		n := *p.maxUses
		t.MaxUses = &n
	}
	if p.expiry != nil {
		e := *p.expiry
		t.Expiry = &e
	}
	return t
}

// Discount computes the discount a subtotal would receive without changing the code.
//
// Returns:
//   - the discount: round2(subtotal × discount / 100) for percent codes, min(discount, subtotal)
//     for fixed codes
//   - *errs.PromoNotApplicableError matching errs.ErrPromoNotApplicable and one of
//     ErrPromoDisabled, ErrPromoExpired, ErrPromoBelowMinimum, ErrPromoUsageExhausted
//
// Example:
//
//	discount, err := code.Discount(kernel.MustMoney("150.00"), time.Now())
//	if errors.Is(err, promo.ErrPromoUsageExhausted) {
//	    // tell the customer the code is used up
//	}
func (p *PromoCode) Discount(subtotal kernel.Money, now time.Time) (kernel.Money, error) {
	if err := p.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if reason := p.notApplicable(subtotal, now); reason != nil {
		return kernel.Money{}, errs.NewPromoNotApplicableError(p.code, reason)
	}
	if p.kind == Percent {
		return subtotal.Percent(p.discount), nil
	}
	return kernel.NewMoney(p.discount).Min(subtotal), nil
}

// Consume records one use. It re-checks usage, expiry and enablement, so two orders
// confirmed against the last remaining use cannot both succeed as long as the caller holds
// the code's lock.
func (p *PromoCode) Consume(now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if reason := p.notUsable(now); reason != nil {
		return errs.NewPromoNotApplicableError(p.code, reason)
	}
	p.usedCount++
	return nil
}

func (p *PromoCode) notApplicable(subtotal kernel.Money, now time.Time) error {
	if reason := p.notUsable(now); reason != nil {
		return reason
	}
	if p.minOrder != nil && subtotal.LessThan(*p.minOrder) {
		return ErrPromoBelowMinimum
	}
	return nil
}

func (p *PromoCode) notUsable(now time.Time) error {
	switch {
	case !p.enabled:
		return ErrPromoDisabled
	case p.expiry != nil && now.After(*p.expiry):
		return ErrPromoExpired
	case p.maxUses != nil && p.usedCount >= *p.maxUses:
		return ErrPromoUsageExhausted
	default:
		return nil
	}
}

// Snapshot is the flat, serializable state of a PromoCode.
type Snapshot struct {
	Code      string          `json:"code"`
	Discount  decimal.Decimal `json:"discount"`
	Type      DiscountType    `json:"type"`
	MinOrder  *kernel.Money   `json:"minOrder,omitempty"`
	MaxUses   *int            `json:"maxUses,omitempty"`
	UsedCount int             `json:"usedCount"`
	Expiry    *time.Time      `json:"expiryDate,omitempty"`
	Enabled   bool            `json:"enabled"`
}

func (p *PromoCode) Snapshot() Snapshot {
	t := p.Terms()
	return Snapshot{
		Code:      t.Code,
		Discount:  t.Discount,
		Type:      t.Type,
		MinOrder:  t.MinOrder,
		MaxUses:   t.MaxUses,
		UsedCount: p.usedCount,
		Expiry:    t.Expiry,
		Enabled:   t.Enabled,
	}
}

func RestorePromoCode(s Snapshot) (*PromoCode, error) {
	return newPromoCode(Terms{
		Code:     s.Code,
		Discount: s.Discount,
		Type:     s.Type,
		MinOrder: s.MinOrder,
		MaxUses:  s.MaxUses,
		Expiry:   s.Expiry,
		Enabled:  s.Enabled,
	}, s.UsedCount)
}
