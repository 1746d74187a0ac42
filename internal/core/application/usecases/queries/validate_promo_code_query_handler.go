package queries

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type ValidatePromoCodeQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      func() time.Time
}

func NewValidatePromoCodeQueryHandler(uowFactory ports.UnitOfWorkFactory, clock func() time.Time) ValidatePromoCodeQueryHandler {
	return ValidatePromoCodeQueryHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns *errs.PromoNotApplicableError for unknown codes as well as for codes
// that do not apply.
func (h ValidatePromoCodeQueryHandler) Handle(ctx context.Context, query ValidatePromoCodeQuery) (PromoCodeResponse, error) {
	if err := query.Validate(); err != nil {
		return PromoCodeResponse{}, err
	}

	code, err := h.uowFactory.Create().PromoCodeRepository().Get(ctx, query.Code())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return PromoCodeResponse{}, errs.NewPromoNotApplicableError(query.Code(), err)
	}
	if err != nil {
		return PromoCodeResponse{}, err
	}

	discount, err := code.Discount(query.Subtotal(), h.clock())
	if err != nil {
		return PromoCodeResponse{}, err
	}

	return PromoCodeResponse{
		Code:     code.Code(),
		Subtotal: query.Subtotal(),
		Discount: discount,
	}, nil
}
