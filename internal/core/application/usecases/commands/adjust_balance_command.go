package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrAdjustBalanceCommandIsNotConstructed = errors.New(
	"AdjustBalanceCommand must be created via NewAdjustBalanceCommand constructor",
)

// AdjustBalanceCommand corrects a wallet by a signed amount. Only admins may adjust, and
// the reason is recorded as the transaction description.
type AdjustBalanceCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	amount     kernel.Money
	reason     string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdjustBalanceCommand(
	customerID kernel.UUID, amount kernel.Money, reason string, actor kernel.Actor,
) (AdjustBalanceCommand, error) {
	if err := errors.Join(customerID.Validate(), actor.Validate()); err != nil {
		return AdjustBalanceCommand{}, err
	}

	return AdjustBalanceCommand{
		customerID: customerID,
		amount:     amount,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustBalanceCommand) Validate() error {
	return c.guard.Validate(ErrAdjustBalanceCommandIsNotConstructed)
}

func (c AdjustBalanceCommand) CustomerID() kernel.UUID { return c.customerID }
func (c AdjustBalanceCommand) Amount() kernel.Money    { return c.amount }
func (c AdjustBalanceCommand) Reason() string          { return c.reason }
func (c AdjustBalanceCommand) Actor() kernel.Actor     { return c.actor }
