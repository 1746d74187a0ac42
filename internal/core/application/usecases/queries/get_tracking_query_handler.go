package queries

import (
	"context"

	"storefront/internal/core/ports"
)

type GetTrackingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetTrackingQueryHandler(uowFactory ports.UnitOfWorkFactory) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound while the order is not yet confirmed, since
// tracking starts at confirmation.
func (h GetTrackingQueryHandler) Handle(ctx context.Context, query GetTrackingQuery) (TrackingResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackingResponse{}, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return TrackingResponse{}, err
	}
	if err = authorizeOrderRead(ctx, uow, query.Actor(), o); err != nil {
		return TrackingResponse{}, err
	}

	t, err := uow.TrackingRepository().Get(ctx, query.OrderID())
	if err != nil {
		return TrackingResponse{}, err
	}

	return newTrackingResponse(o, t)
}
