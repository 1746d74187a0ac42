// Package payment holds the card processor adapters behind ports.PaymentGateway.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

const (
	statusApproved = "approved"
)

// ErrGatewayRejected is returned when MercadoPago answers but does not approve the operation.
var ErrGatewayRejected = errors.New("payment gateway rejected the operation")

type paymentCapturer interface {
	Capture(ctx context.Context, id int) (*payment.Response, error)
	CaptureAmount(ctx context.Context, id int, amount float64) (*payment.Response, error)
}

type paymentRefunder interface {
	Create(ctx context.Context, paymentID int) (*refund.Response, error)
	CreatePartialRefund(ctx context.Context, paymentID int, amount float64) (*refund.Response, error)
}

// MercadoPagoGateway captures and refunds card payments through the MercadoPago API. The
// payment reference stored on the order is the MercadoPago payment id.
type MercadoPagoGateway struct {
	payments paymentCapturer
	refunds  paymentRefunder
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, errs.NewValueIsRequiredError("accessToken")
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return newMercadoPagoGateway(payment.NewClient(cfg), refund.NewClient(cfg)), nil
}

func newMercadoPagoGateway(payments paymentCapturer, refunds paymentRefunder) *MercadoPagoGateway {
	return &MercadoPagoGateway{payments: payments, refunds: refunds}
}

func (g *MercadoPagoGateway) Capture(ctx context.Context, req ports.CaptureRequest) (ports.CaptureResult, error) {
	id, err := parsePaymentID(req.PaymentReference)
	if err != nil {
		return ports.CaptureResult{}, err
	}

	amount, _ := req.Amount.Decimal().Float64()
	resp, err := g.payments.CaptureAmount(ctx, id, amount)
	if err != nil {
		return ports.CaptureResult{}, fmt.Errorf("capture payment %d for order %s: %w", id, req.OrderNumber, err)
	}
	if resp.Status != statusApproved {
		return ports.CaptureResult{}, fmt.Errorf("%w: payment %d is %s", ErrGatewayRejected, id, resp.Status)
	}

	return ports.CaptureResult{Reference: strconv.Itoa(resp.ID), Status: resp.Status}, nil
}

// Refund returns the whole payment when req.Full is set and a partial amount otherwise.
func (g *MercadoPagoGateway) Refund(ctx context.Context, req ports.RefundRequest) (ports.RefundResult, error) {
	id, err := parsePaymentID(req.PaymentReference)
	if err != nil {
		return ports.RefundResult{}, err
	}

	var resp *refund.Response
	if req.Full {
		resp, err = g.refunds.Create(ctx, id)
	} else {
		amount, _ := req.Amount.Decimal().Float64()
		resp, err = g.refunds.CreatePartialRefund(ctx, id, amount)
	}
	if err != nil {
		return ports.RefundResult{}, fmt.Errorf("refund payment %d for order %s: %w", id, req.OrderNumber, err)
	}
	if resp.Status != statusApproved {
		return ports.RefundResult{}, fmt.Errorf("%w: refund of payment %d is %s", ErrGatewayRejected, id, resp.Status)
	}

	return ports.RefundResult{Reference: strconv.Itoa(resp.ID), Status: resp.Status}, nil
}

func parsePaymentID(reference string) (int, error) {
	if reference == "" {
		return 0, errs.NewValueIsRequiredError("paymentReference")
	}
	id, err := strconv.Atoi(reference)
	if err != nil || id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("paymentReference",
			fmt.Errorf("%q is not a MercadoPago payment id", reference))
	}
	return id, nil
}
