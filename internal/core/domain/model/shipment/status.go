package shipment

import (
	"fmt"
	"strings"

	"tracking/internal/pkg/errs"
)

// Status is the delivery state of a shipment.
//
// State transitions:
//
//	Shipped ──┬──> Delivered
//	   ▲      │        ▲
//	   │      ▼        │
//	   └── Delayed ────┘
//
// Delivered is terminal. Movement while Shipped is recorded through progress
// entries rather than a dedicated in-transit status.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusShipped is the initial status of every new shipment.
	StatusShipped

	// StatusDelayed marks a shipment that missed its expected delivery window.
	StatusDelayed

	// StatusDelivered is the final status with no further transitions allowed.
	StatusDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusShipped:   "shipped",
		StatusDelayed:   "delayed",
		StatusDelivered: "delivered",
	}
}

func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown and Delivered have no outgoing transitions
	return map[Status][]Status{
		StatusShipped: {StatusDelayed, StatusDelivered},
		StatusDelayed: {StatusShipped, StatusDelivered},
	}
}

// ParseStatus converts the persisted or user supplied name into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == normalized {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of shipped, delayed, delivered", s),
	)
}

// Validate checks that the status is one of the known non-zero values.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further status changes are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// TransitionTo returns next if the move from s is allowed by the state machine.
//
// Returns:
//   - (next, nil) on a legal transition
//   - (StatusUnknown, InvalidTransitionError) if the move is not allowed
//   - (StatusUnknown, ValueIsInvalidError) if next is not a valid status
//
// Example:
//
//	next, err := shipment.StatusShipped.TransitionTo(shipment.StatusDelayed)
//	// next == StatusDelayed, err == nil
//
//	_, err = shipment.StatusDelivered.TransitionTo(shipment.StatusShipped)
//	// errors.Is(err, errs.ErrInvalidTransition) == true
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}

	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}

	return StatusUnknown, errs.NewInvalidTransitionError(s.String(), next.String())
}
