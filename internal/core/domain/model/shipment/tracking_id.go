package shipment

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// TrackingIDLength is the length of identifiers issued for new shipments.
const TrackingIDLength = 16

// maxTrackingIDLength bounds identifiers accepted from callers.
const maxTrackingIDLength = 64

var ErrTrackingIDIsNotConstructed = errors.New("TrackingID must be created via NewTrackingID constructor")

// TrackingID is the public, human-shareable identifier of a shipment.
// It is alphanumeric and contains at least one digit.
type TrackingID struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingID validates the textual form of a tracking identifier.
func NewTrackingID(value string) (TrackingID, error) {
	if value == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("tracking id")
	}
	if len(value) > maxTrackingIDLength {
		return TrackingID{}, errs.NewValueIsOutOfRangeError("tracking id length", len(value), 1, maxTrackingIDLength)
	}

	hasDigit := false
	for i := range len(value) {
		c := value[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
				"tracking id",
				fmt.Errorf("character %q is not alphanumeric", c),
			)
		}
	}
	if !hasDigit {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause("tracking id", errors.New("must contain a digit"))
	}

	return TrackingID{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (t TrackingID) Validate() error {
	return t.guard.Validate(ErrTrackingIDIsNotConstructed)
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}
