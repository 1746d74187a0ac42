package queries

import (
	"context"

	"storefront/internal/core/ports"
)

type ListCustomerOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListCustomerOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListCustomerOrdersQueryHandler {
	return ListCustomerOrdersQueryHandler{uowFactory: uowFactory}
}

func (h ListCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().ListByCustomer(ctx, query.CustomerID())
	if err != nil {
		return nil, err
	}

	status, filtered := query.Status()
	summaries := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		if filtered && o.Status() != status {
			continue
		}
		summaries = append(summaries, OrderSummaryResponse{
			ID:            o.ID(),
			Number:        o.Number(),
			Status:        o.Status(),
			PaymentStatus: o.PaymentStatus(),
			ItemCount:     len(o.Items()),
			Total:         o.Total(),
			CreatedAt:     o.CreatedAt(),
		})
	}

	return summaries, nil
}
