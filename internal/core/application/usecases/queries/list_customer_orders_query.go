package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
		"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
	)
)

// ListCustomerOrdersQuery lists a customer's orders, newest first. An empty status
// returns every order.
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID
	status     order.Status
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(customerID kernel.UUID, status string, actor kernel.Actor) (ListCustomerOrdersQuery, error) {
	if err := errors.Join(customerID.Validate(), actor.Validate()); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	if !actor.IsBackOffice() && !actor.ID().IsEqual(customerID) {
		return ListCustomerOrdersQuery{}, errs.NewUnauthorizedError(actor.ID().String(), "list another customer's orders")
	}

	query := ListCustomerOrdersQuery{
		customerID: customerID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListCustomerOrdersQuery{}, err
		}
		query.status = parsed
	}
	return query, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID { return q.customerID }
func (q ListCustomerOrdersQuery) Actor() kernel.Actor     { return q.actor }

// Status returns the status filter and whether one was given.
func (q ListCustomerOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.status != order.Unknown
}

// OrderSummaryResponse is the list row of an order.
type OrderSummaryResponse struct {
	ID            kernel.UUID         `json:"id"`
	Number        string              `json:"number"`
	Status        order.Status        `json:"status"`
	PaymentStatus order.PaymentStatus `json:"paymentStatus"`
	ItemCount     int                 `json:"itemCount"`
	Total         kernel.Money        `json:"total"`
	CreatedAt     time.Time           `json:"createdAt"`
}
