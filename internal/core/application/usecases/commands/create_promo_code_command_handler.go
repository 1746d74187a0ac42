package commands

import (
	"context"

	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/errs"
)

// CreatePromoCodeCommandHandler stores new promo codes. Admins only.
type CreatePromoCodeCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreatePromoCodeCommandHandler(uowFactory UoWFactory) CreatePromoCodeCommandHandler {
	return CreatePromoCodeCommandHandler{uowFactory: uowFactory}
}

func (h CreatePromoCodeCommandHandler) Handle(ctx context.Context, command CreatePromoCodeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	if !actor.IsAdmin() {
		return errs.NewUnauthorizedError(actor.ID().String(), "create a promo code")
	}

	code, err := promo.NewPromoCode(command.Terms())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PromoCodeRepository().Add(ctx, code); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
