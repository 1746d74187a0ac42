package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// AssignDriver handles POST /api/v1/orders/:id/driver.
func (s *Server) AssignDriver(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.AssignDriverRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var driverID *kernel.UUID
	if req.DriverId != nil {
		id, err := toUUID(*req.DriverId)
		if err != nil {
			return s.fail(c, err)
		}
		driverID = &id
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	assigned, err := s.handlers.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, servers.AssignDriverResponse{DriverId: assigned.Bytes()})
}

// GetTracking handles GET /api/v1/orders/:id/tracking.
func (s *Server) GetTracking(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithTracking(c, orderID)
}

// AdvanceDelivery handles POST /api/v1/orders/:id/tracking/advance.
func (s *Server) AdvanceDelivery(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.Delivery.HandleAdvance(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithTracking(c, orderID)
}

// CompleteDelivery handles POST /api/v1/orders/:id/tracking/complete.
func (s *Server) CompleteDelivery(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.CompleteDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, deref(req.Notes), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.Delivery.HandleComplete(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithTracking(c, orderID)
}

// UpdateLocation handles PUT /api/v1/orders/:id/tracking/location.
func (s *Server) UpdateLocation(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.Location
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(orderID, req.Latitude, req.Longitude, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterDriver handles POST /api/v1/drivers. The driver id is the id the driver
// authenticates with.
func (s *Server) RegisterDriver(c echo.Context) error {
	var req servers.RegisterDriverRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	driverID, err := toUUID(req.Id)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterDriverCommand(driverID, req.Name, req.Capacity, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.Drivers.HandleRegister(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

// SetDriverShift handles PUT /api/v1/drivers/:id/shift.
func (s *Server) SetDriverShift(c echo.Context, id servers.DriverId) error {
	driverID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.DriverShiftRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverShiftCommand(driverID, req.Active, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.Drivers.HandleShift(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListDriverDeliveries handles GET /api/v1/drivers/:id/deliveries?open=true.
func (s *Server) ListDriverDeliveries(c echo.Context, id servers.DriverId, params servers.ListDriverDeliveriesParams) error {
	driverID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListDriverDeliveriesQuery(driverID, deref(params.Open), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	deliveries, err := s.handlers.ListDriverDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, deliveries)
}

func (s *Server) respondWithTracking(c echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetTrackingQuery(orderID, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}

	response, err := s.handlers.GetTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, response)
}
