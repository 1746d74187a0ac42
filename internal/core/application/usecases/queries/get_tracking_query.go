package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/guard"
)

var (
	ErrGetTrackingQueryIsNotConstructed = errors.New(
		"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
	)
)

// GetTrackingQuery reads the delivery of an order: where it is in the timeline, the
// driver's last position and how far that position is from the delivery address.
//
// Example:
//
//	query, _ := NewGetTrackingQuery(orderID, customer)
//	response, err := NewGetTrackingQueryHandler(uowFactory).Handle(ctx, query)
//	if err == nil && response.DistanceKm != nil {
//	    fmt.Printf("%.1f km away\n", *response.DistanceKm)
//	}
type GetTrackingQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetTrackingQuery(orderID kernel.UUID, actor kernel.Actor) (GetTrackingQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetTrackingQuery{}, err
	}
	return GetTrackingQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

func (q GetTrackingQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetTrackingQuery) Actor() kernel.Actor  { return q.actor }

type TrackingResponse struct {
	OrderID           kernel.UUID        `json:"orderId"`
	OrderNumber       string             `json:"orderNumber"`
	OrderStatus       order.Status       `json:"orderStatus"`
	DriverID          *kernel.UUID       `json:"driverId,omitempty"`
	Status            tracking.Status    `json:"status"`
	CurrentLocation   *LocationResponse  `json:"currentLocation,omitempty"`
	LocationUpdatedAt *time.Time         `json:"locationUpdatedAt,omitempty"`
	Destination       *LocationResponse  `json:"destination,omitempty"`
	DistanceKm        *float64           `json:"distanceKm,omitempty"`
	Timeline          []TimelineResponse `json:"timeline"`
	CreatedAt         time.Time          `json:"createdAt"`
}

type TimelineResponse struct {
	Status    tracking.Status `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Notes     string          `json:"notes,omitempty"`
}

func newTrackingResponse(o *order.Order, t *tracking.Tracking) (TrackingResponse, error) {
	response := TrackingResponse{
		OrderID:         t.OrderID(),
		OrderNumber:     o.Number(),
		OrderStatus:     o.Status(),
		DriverID:        t.DriverID(),
		Status:          t.Status(),
		CurrentLocation: newLocationResponse(t.CurrentLocation()),
		Destination:     newLocationResponse(o.Address().Location()),
		Timeline:        make([]TimelineResponse, 0, len(t.Timeline())),
		CreatedAt:       t.CreatedAt(),
	}
	if updated := t.LocationUpdatedAt(); !updated.IsZero() {
		response.LocationUpdatedAt = &updated
	}

	distance, err := distanceKm(t.CurrentLocation(), o.Address().Location())
	if err != nil {
		return TrackingResponse{}, err
	}
	response.DistanceKm = distance

	for _, entry := range t.Timeline() {
		response.Timeline = append(response.Timeline, TimelineResponse(entry))
	}
	return response, nil
}

// distanceKm is nil unless both points are known.
func distanceKm(from, to *kernel.GeoPoint) (*float64, error) {
	if from == nil || to == nil {
		return nil, nil
	}
	km, err := from.DistanceKm(*to)
	if err != nil {
		return nil, err
	}
	return &km, nil
}
