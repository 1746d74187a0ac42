package tracking

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is a position in the fixed delivery sequence:
//
//	Preparing ──> Ready ──> PickedUp ──> InTransit ──> Nearby ──> Delivered
//
// Tracking only ever moves one step forward; Delivered is terminal.
type Status int

const (
	Unknown Status = iota
	Preparing
	Ready
	PickedUp
	InTransit
	Nearby
	Delivered
)

// onTheWay is the legacy name of InTransit still sent by older driver apps.
const onTheWay = "on_the_way"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Nearby:    "nearby",
		Delivered: "delivered",
	}
}

// ParseStatus converts the persisted/API form into a Status. "on_the_way" is accepted as InTransit.
func ParseStatus(s string) (Status, error) {
	if s == onTheWay {
		return InTransit, nil
	}
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"tracking status is invalid", fmt.Errorf("%q is not a valid tracking status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking status is invalid", fmt.Errorf("%d is not a valid tracking status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Next returns the following step of the sequence.
//
// Returns:
//   - (next, nil) for every status before Delivered
//   - (Unknown, *errs.NoFurtherTransitionError) at Delivered
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s == Delivered {
		return Unknown, errs.NewNoFurtherTransitionError("tracking", s.String())
	}
	return s + 1, nil
}

// IsAtLeast reports whether s is at or beyond other in the sequence.
func (s Status) IsAtLeast(other Status) bool {
	return s >= other
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
