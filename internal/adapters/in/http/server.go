// Package http is the storefront's inbound REST adapter. Every route under /api/v1 runs as
// the actor named in the bearer token; the application layer decides what that actor may do.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const apiBasePath = "/api/v1"

// Handlers groups the command and query handlers the server delegates to.
type Handlers struct {
	// Command handlers
	CreateOrder       commands.CreateOrderCommandHandler
	ChangeOrderStatus commands.ChangeOrderStatusCommandHandler
	RefundOrder       commands.RefundOrderCommandHandler
	CapturePayment    commands.CapturePaymentCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	Delivery          commands.DeliveryCommandHandler
	UpdateLocation    commands.UpdateDriverLocationCommandHandler
	TopUpAccount      commands.TopUpAccountCommandHandler
	AdjustBalance     commands.AdjustBalanceCommandHandler
	RedeemPoints      commands.RedeemLoyaltyPointsCommandHandler
	CreatePromoCode   commands.CreatePromoCodeCommandHandler
	Drivers           commands.DriverCommandHandler

	// Query handlers
	GetOrder             queries.GetOrderQueryHandler
	ListCustomerOrders   queries.ListCustomerOrdersQueryHandler
	GetAccount           queries.GetAccountQueryHandler
	GetTracking          queries.GetTrackingQueryHandler
	ListDriverDeliveries queries.ListDriverDeliveriesQueryHandler
	ValidatePromoCode    queries.ValidatePromoCodeQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// RegisterRoutes mounts /health, the API docs and the authenticated /api/v1 routes on e.
// Requests under /api/v1 are checked against the embedded OpenAPI document before they
// reach a handler.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return fmt.Errorf("load openapi document: %w", err)
	}
	if err := registerDocs(doc); err != nil {
		return err
	}

	e.HTTPErrorHandler = s.handleError
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(apiBasePath, ActorMiddleware(jwtSecret), RequestValidator(doc, apiBasePath))
	servers.RegisterHandlers(api, s)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
