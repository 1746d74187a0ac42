package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	// PaymentWallet settles the order from the customer's ledger balance at checkout.
	PaymentWallet PaymentMethod = "wallet"
)

// ParsePaymentMethod validates a payment method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCard, PaymentCOD, PaymentBankTransfer, PaymentWallet:
		return m, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not supported", s))
	}
}

// RefundsToWallet reports whether refunds for this method are credited to the
// customer's ledger instead of being sent back through the payment gateway.
func (m PaymentMethod) RefundsToWallet() bool {
	return m != PaymentCard
}

// PaymentStatus tracks the money side of an order independently of its fulfilment status.
//
// State transitions:
//
//	Pending ──> Authorized ──> Captured ──> PartiallyRefunded ──> Refunded
//	   │            │             │                 │
//	   └────────────┴──> Failed   └────> Refunded   └──> Failed (refund call failed)
//
// Failed is not terminal: staff may retry a capture or settle a refund manually.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentAuthorized
	PaymentCaptured
	PaymentFailed
	PaymentRefunded
	PaymentPartiallyRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:           "unknown",
		PaymentPending:           "pending",
		PaymentAuthorized:        "authorized",
		PaymentCaptured:          "captured",
		PaymentFailed:            "failed",
		PaymentRefunded:          "refunded",
		PaymentPartiallyRefunded: "partially_refunded",
	}
}

// ParsePaymentStatus converts the persisted/API form into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", s))
}

func (s PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[s]; !ok || s == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsSettled reports whether money has been taken from the customer and not fully returned.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentCaptured || s == PaymentPartiallyRefunded
}

// Authorize moves a pending or failed payment to Authorized.
func (s PaymentStatus) Authorize() (PaymentStatus, error) {
	if s != PaymentPending && s != PaymentFailed {
		return PaymentUnknown, errs.NewIllegalTransitionError("payment", s.String(), PaymentAuthorized.String())
	}
	return PaymentAuthorized, nil
}

// Capture moves a pending, authorized or failed payment to Captured.
func (s PaymentStatus) Capture() (PaymentStatus, error) {
	if s != PaymentPending && s != PaymentAuthorized && s != PaymentFailed {
		return PaymentUnknown, errs.NewIllegalTransitionError("payment", s.String(), PaymentCaptured.String())
	}
	return PaymentCaptured, nil
}

// Fail records a failed capture attempt.
func (s PaymentStatus) Fail() (PaymentStatus, error) {
	if s != PaymentPending && s != PaymentAuthorized && s != PaymentFailed {
		return PaymentUnknown, errs.NewIllegalTransitionError("payment", s.String(), PaymentFailed.String())
	}
	return PaymentFailed, nil
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	parsed, err := ParsePaymentStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
