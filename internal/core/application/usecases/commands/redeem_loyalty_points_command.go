package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrRedeemLoyaltyPointsCommandIsNotConstructed = errors.New(
	"RedeemLoyaltyPointsCommand must be created via NewRedeemLoyaltyPointsCommand constructor",
)

type RedeemLoyaltyPointsCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	points     int64
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewRedeemLoyaltyPointsCommand(customerID kernel.UUID, points int64, actor kernel.Actor) (RedeemLoyaltyPointsCommand, error) {
	var pointsErr error
	if points <= 0 {
		pointsErr = errs.NewValueIsInvalidErrorWithCause("points", fmt.Errorf("%d is not greater than 0", points))
	}
	if err := errors.Join(customerID.Validate(), pointsErr, actor.Validate()); err != nil {
		return RedeemLoyaltyPointsCommand{}, err
	}

	return RedeemLoyaltyPointsCommand{
		customerID: customerID,
		points:     points,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RedeemLoyaltyPointsCommand) Validate() error {
	return c.guard.Validate(ErrRedeemLoyaltyPointsCommandIsNotConstructed)
}

func (c RedeemLoyaltyPointsCommand) CustomerID() kernel.UUID { return c.customerID }
func (c RedeemLoyaltyPointsCommand) Points() int64           { return c.points }
func (c RedeemLoyaltyPointsCommand) Actor() kernel.Actor     { return c.actor }
