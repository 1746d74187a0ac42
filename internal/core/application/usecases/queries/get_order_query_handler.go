package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if err = authorizeOrderRead(ctx, uow, query.Actor(), o); err != nil {
		return OrderResponse{}, err
	}

	return newOrderResponse(o), nil
}

// authorizeOrderRead lets back office staff read any order, customers their own and
// drivers the ones assigned to them. Other actors get the same not found error as for a
// missing order.
func authorizeOrderRead(ctx context.Context, uow ports.UnitOfWork, actor kernel.Actor, o *order.Order) error {
	switch {
	case actor.IsBackOffice():
		return nil
	case actor.IsCustomer() && actor.ID().IsEqual(o.CustomerID()):
		return nil
	case actor.IsDriver():
		t, err := uow.TrackingRepository().Get(ctx, o.ID())
		if err == nil && t.IsAssignedTo(actor.ID()) {
			return nil
		}
	}
	return errs.NewObjectNotFoundError("order", o.ID())
}
