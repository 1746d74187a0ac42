package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req servers.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actor := currentActor(c)
	customerID := actor.ID()
	if req.CustomerId != nil {
		id, err := toUUID(*req.CustomerId)
		if err != nil {
			return s.fail(c, err)
		}
		customerID = id
	}

	var location *kernel.GeoPoint
	if req.Location != nil {
		point, err := kernel.NewGeoPoint(req.Location.Latitude, req.Location.Longitude)
		if err != nil {
			return s.fail(c, err)
		}
		location = &point
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, commands.OrderLine{
			ProductID: item.ProductId,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: kernel.NewMoney(item.UnitPrice),
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actor, customerID, lines, req.Address, location,
		string(req.PaymentMethod), deref(req.PaymentReference), deref(req.PromoCode))
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	if err := s.handlers.CreateOrder.Handle(ctx, cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithOrder(c, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondWithOrder(c, http.StatusOK, orderID)
}

// ListOrders handles GET /api/v1/orders?customerId=&status=.
func (s *Server) ListOrders(c echo.Context, params servers.ListOrdersParams) error {
	actor := currentActor(c)
	customerID := actor.ID()
	if params.CustomerId != nil {
		id, err := toUUID(*params.CustomerId)
		if err != nil {
			return s.fail(c, err)
		}
		customerID = id
	}

	var status string
	if params.Status != nil {
		status = string(*params.Status)
	}
	query, err := queries.NewListCustomerOrdersQuery(customerID, status, actor)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.ChangeOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, string(req.Status), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.ChangeOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID)
}

// CapturePayment handles POST /api/v1/orders/:id/capture.
func (s *Server) CapturePayment(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.CapturePaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCapturePaymentCommand(orderID, deref(req.Reference), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.CapturePayment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID)
}

// RefundOrder handles POST /api/v1/orders/:id/refunds. Without an amount everything not yet
// refunded is returned.
func (s *Server) RefundOrder(c echo.Context, id servers.OrderId) error {
	orderID, err := toUUID(id)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.RefundOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var amount *kernel.Money
	if req.Amount != nil {
		m := kernel.NewMoney(*req.Amount)
		amount = &m
	}

	cmd, err := commands.NewRefundOrderCommand(orderID, amount, deref(req.Reason), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.RefundOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return s.respondWithOrder(c, http.StatusOK, orderID)
}

func (s *Server) respondWithOrder(c echo.Context, status int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}

	response, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, response)
}

func toUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
