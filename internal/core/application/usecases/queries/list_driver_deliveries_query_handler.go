package queries

import (
	"context"

	"storefront/internal/core/ports"
)

type ListDriverDeliveriesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListDriverDeliveriesQueryHandler(uowFactory ports.UnitOfWorkFactory) ListDriverDeliveriesQueryHandler {
	return ListDriverDeliveriesQueryHandler{uowFactory: uowFactory}
}

func (h ListDriverDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDriverDeliveriesQuery,
) ([]TrackingResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	trackings, err := uow.TrackingRepository().ListByDriver(ctx, query.DriverID(), query.OpenOnly())
	if err != nil {
		return nil, err
	}

	deliveries := make([]TrackingResponse, 0, len(trackings))
	for _, t := range trackings {
		o, err := uow.OrderRepository().Get(ctx, t.OrderID())
		if err != nil {
			return nil, err
		}
		response, err := newTrackingResponse(o, t)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, response)
	}

	return deliveries, nil
}
