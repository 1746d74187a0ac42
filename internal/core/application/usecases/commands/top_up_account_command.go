package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrTopUpAccountCommandIsNotConstructed = errors.New(
	"TopUpAccountCommand must be created via NewTopUpAccountCommand constructor",
)

// TopUpAccountCommand adds money to a customer's wallet. Reference links the top-up to the
// payment that funded it.
type TopUpAccountCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	amount     kernel.Money
	reference  string
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewTopUpAccountCommand(
	customerID kernel.UUID, amount kernel.Money, reference string, actor kernel.Actor,
) (TopUpAccountCommand, error) {
	var amountErr error
	if !amount.IsPositive() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if err := errors.Join(customerID.Validate(), amountErr, actor.Validate()); err != nil {
		return TopUpAccountCommand{}, err
	}

	return TopUpAccountCommand{
		customerID: customerID,
		amount:     amount,
		reference:  reference,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TopUpAccountCommand) Validate() error {
	return c.guard.Validate(ErrTopUpAccountCommandIsNotConstructed)
}

func (c TopUpAccountCommand) CustomerID() kernel.UUID { return c.customerID }
func (c TopUpAccountCommand) Amount() kernel.Money    { return c.amount }
func (c TopUpAccountCommand) Reference() string       { return c.reference }
func (c TopUpAccountCommand) Actor() kernel.Actor     { return c.actor }
