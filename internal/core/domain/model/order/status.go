package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table so that orders follow
// the store's fulfilment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> OutForDelivery ──> Delivered ──(refund)──> Refunded
//	   │            │              │               ▲     │
//	   │            │              │   ReadyForPickup    │
//	   └────────────┴──────────────┴────────┴────────────┴──> Cancelled
//
// Delivered, Cancelled and Refunded are terminal for Transition. Refunded is reached
// from Delivered only through Order.Refund.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a placed order awaiting store confirmation.
	Pending

	// Confirmed means the store accepted the order; delivery tracking starts here.
	Confirmed

	// Processing means the order is being cut, weighed and packed.
	Processing

	// ReadyForPickup means the order is packed and waiting for a driver.
	ReadyForPickup

	// OutForDelivery means a driver has picked the order up.
	OutForDelivery

	// Delivered is the successful final state.
	Delivered

	// Cancelled is the final state of an order that will not be fulfilled.
	Cancelled

	// Refunded is the final state of a delivered order whose payment was fully returned.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Processing:     "processing",
		ReadyForPickup: "ready_for_pickup",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Refunded:       "refunded",
	}
}

// getTransitions returns the legal next statuses for each status.
// Statuses absent from the map, and those mapped to an empty set, are terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and Unknown statuses have no transitions
	return map[Status][]Status{
		Pending:        {Confirmed, Cancelled},
		Confirmed:      {Processing, Cancelled},
		Processing:     {OutForDelivery, Cancelled},
		ReadyForPickup: {OutForDelivery, Cancelled},
		OutForDelivery: {Delivered, Cancelled},
	}
}

// ParseStatus converts the persisted/API form ("out_for_delivery") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is Unknown or out of range
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no Transition is legal from s.
func (s Status) IsTerminal() bool {
	return len(getTransitions()[s]) == 0
}

// CanTransitionTo reports whether next is in the transition table for s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates a move from s to next without performing it.
//
// Returns:
//   - (next, nil) when the table allows it
//   - (Unknown, *errs.IllegalTransitionError) otherwise
//
// Example:
//
//	newStatus, err := order.Pending.Transition(order.Delivered)
//	// err matches errs.ErrIllegalTransition
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewIllegalTransitionError("order", s.String(), next.String())
	}
	return next, nil
}

// MarshalText writes the snake_case name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the snake_case name.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
