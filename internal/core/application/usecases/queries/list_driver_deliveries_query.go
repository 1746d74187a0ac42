package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrListDriverDeliveriesQueryIsNotConstructed = errors.New(
		"ListDriverDeliveriesQuery must be created via NewListDriverDeliveriesQuery constructor",
	)
)

// ListDriverDeliveriesQuery lists the deliveries assigned to a driver, oldest first.
// Drivers list their own deliveries; back office staff list anyone's.
type ListDriverDeliveriesQuery struct {
	driverID kernel.UUID
	openOnly bool
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewListDriverDeliveriesQuery(driverID kernel.UUID, openOnly bool, actor kernel.Actor) (ListDriverDeliveriesQuery, error) {
	if err := errors.Join(driverID.Validate(), actor.Validate()); err != nil {
		return ListDriverDeliveriesQuery{}, err
	}
	if !actor.IsBackOffice() && !(actor.IsDriver() && actor.ID().IsEqual(driverID)) {
		return ListDriverDeliveriesQuery{}, errs.NewUnauthorizedError(actor.ID().String(), "list another driver's deliveries")
	}
	return ListDriverDeliveriesQuery{
		driverID: driverID,
		openOnly: openOnly,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListDriverDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDriverDeliveriesQueryIsNotConstructed)
}

func (q ListDriverDeliveriesQuery) DriverID() kernel.UUID { return q.driverID }
func (q ListDriverDeliveriesQuery) OpenOnly() bool        { return q.openOnly }
