package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// CaptureRequest asks the gateway to take an authorized amount.
type CaptureRequest struct {
	OrderID          kernel.UUID
	OrderNumber      string
	PaymentReference string
	Amount           kernel.Money
}

// CaptureResult is the gateway's answer to a capture.
type CaptureResult struct {
	// Reference is the gateway's transaction id, possibly different from the authorisation.
	Reference string
	Status    string
}

// RefundRequest asks the gateway to return money to the card it came from.
type RefundRequest struct {
	OrderID          kernel.UUID
	OrderNumber      string
	PaymentReference string
	Amount           kernel.Money
	// Full is set when the whole captured amount is returned.
	Full   bool
	Reason string
}

type RefundResult struct {
	Reference string
	Status    string
}

// PaymentGateway is the card processor. Calls are made outside any unit of work.
type PaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (CaptureResult, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResult, error)
}
