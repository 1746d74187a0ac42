package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/promo"
	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// GetAccount handles GET /api/v1/accounts/:customerId?limit=.
func (s *Server) GetAccount(c echo.Context, customerId servers.CustomerId, params servers.GetAccountParams) error {
	customerID, err := toUUID(customerId)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetAccountQuery(customerID, deref(params.Limit), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	account, err := s.handlers.GetAccount.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// TopUpAccount handles POST /api/v1/accounts/:customerId/topups.
func (s *Server) TopUpAccount(c echo.Context, customerId servers.CustomerId) error {
	customerID, err := toUUID(customerId)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.TopUpRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewTopUpAccountCommand(customerID, kernel.NewMoney(req.Amount), deref(req.Reference), currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	tx, err := s.handlers.TopUpAccount.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, tx)
}

// AdjustBalance handles POST /api/v1/accounts/:customerId/adjustments.
func (s *Server) AdjustBalance(c echo.Context, customerId servers.CustomerId) error {
	customerID, err := toUUID(customerId)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.AdjustBalanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAdjustBalanceCommand(customerID, kernel.NewMoney(req.Amount), req.Reason, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	tx, err := s.handlers.AdjustBalance.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, tx)
}

// RedeemPoints handles POST /api/v1/accounts/:customerId/redemptions.
func (s *Server) RedeemPoints(c echo.Context, customerId servers.CustomerId) error {
	customerID, err := toUUID(customerId)
	if err != nil {
		return s.fail(c, err)
	}

	var req servers.RedeemPointsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actor := currentActor(c)
	cmd, err := commands.NewRedeemLoyaltyPointsCommand(customerID, req.Points, actor)
	if err != nil {
		return s.fail(c, err)
	}
	if _, err := s.handlers.RedeemPoints.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetAccountQuery(customerID, 0, actor)
	if err != nil {
		return s.fail(c, err)
	}
	account, err := s.handlers.GetAccount.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// CreatePromoCode handles POST /api/v1/promo-codes.
func (s *Server) CreatePromoCode(c echo.Context) error {
	var req servers.CreatePromoCodeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	terms := promo.Terms{
		Code:     req.Code,
		Discount: req.Discount,
		Type:     promo.DiscountType(req.Type),
		MaxUses:  req.MaxUses,
		Expiry:   req.ExpiryDate,
		Enabled:  req.Enabled == nil || *req.Enabled,
	}
	if req.MinOrder != nil {
		minOrder := kernel.NewMoney(*req.MinOrder)
		terms.MinOrder = &minOrder
	}

	cmd, err := commands.NewCreatePromoCodeCommand(terms, currentActor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.handlers.CreatePromoCode.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

// ValidatePromoCode handles GET /api/v1/promo-codes/:code/validation?subtotal=.
func (s *Server) ValidatePromoCode(c echo.Context, code string, params servers.ValidatePromoCodeParams) error {
	subtotal, err := kernel.MoneyFromString(params.Subtotal)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewValidatePromoCodeQuery(code, subtotal)
	if err != nil {
		return s.fail(c, err)
	}
	response, err := s.handlers.ValidatePromoCode.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, response)
}
