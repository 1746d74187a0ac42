package payment

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"storefront/internal/core/ports"
)

// ManualGateway approves every request without contacting a processor. It is used in
// development and when no MercadoPago token is configured; staff settle card payments
// by hand.
type ManualGateway struct {
	logger *slog.Logger
	seq    atomic.Int64
}

func NewManualGateway(logger *slog.Logger) *ManualGateway {
	return &ManualGateway{logger: logger.With("component", "ManualGateway")}
}

func (g *ManualGateway) Capture(_ context.Context, req ports.CaptureRequest) (ports.CaptureResult, error) {
	reference := req.PaymentReference
	if reference == "" {
		reference = g.nextReference("cap")
	}
	g.logger.Info("payment captured manually",
		"order", req.OrderNumber, "reference", reference, "amount", req.Amount.String())
	return ports.CaptureResult{Reference: reference, Status: statusApproved}, nil
}

func (g *ManualGateway) Refund(_ context.Context, req ports.RefundRequest) (ports.RefundResult, error) {
	reference := g.nextReference("ref")
	g.logger.Info("payment refunded manually",
		"order", req.OrderNumber, "payment", req.PaymentReference, "reference", reference,
		"amount", req.Amount.String(), "full", req.Full, "reason", req.Reason)
	return ports.RefundResult{Reference: reference, Status: statusApproved}, nil
}

func (g *ManualGateway) nextReference(prefix string) string {
	return fmt.Sprintf("manual-%s-%d", prefix, g.seq.Add(1))
}
