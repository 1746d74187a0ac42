package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/pkg/guard"
)

var ErrCreatePromoCodeCommandIsNotConstructed = errors.New(
	"CreatePromoCodeCommand must be created via NewCreatePromoCodeCommand constructor",
)

// CreatePromoCodeCommand registers a new discount code. The terms are validated by
// promo.NewPromoCode when the command is built.
type CreatePromoCodeCommand struct { //nolint:recvcheck //using for validation
	code  *promo.PromoCode
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreatePromoCodeCommand(terms promo.Terms, actor kernel.Actor) (CreatePromoCodeCommand, error) {
	code, codeErr := promo.NewPromoCode(terms)
	if err := errors.Join(codeErr, actor.Validate()); err != nil {
		return CreatePromoCodeCommand{}, err
	}

	return CreatePromoCodeCommand{
		code:  code,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePromoCodeCommand) Validate() error {
	return c.guard.Validate(ErrCreatePromoCodeCommandIsNotConstructed)
}

// Terms returns the normalized terms of the new code.
func (c CreatePromoCodeCommand) Terms() promo.Terms  { return c.code.Terms() }
func (c CreatePromoCodeCommand) Actor() kernel.Actor { return c.actor }
