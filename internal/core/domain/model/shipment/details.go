package shipment

import (
	"errors"
	"strings"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	// DefaultService is applied when the sender does not name a service level.
	DefaultService = "NovaShip"

	// DefaultCategory is applied when the sender does not categorize the parcel.
	DefaultCategory = "package"
)

var ErrDetailsIsNotConstructed = errors.New("Details must be created via NewDetails constructor")

// Details holds the descriptive, sender supplied attributes of a shipment.
// They are fixed at creation time.
type Details struct { //nolint:recvcheck //using for validation
	weight            string
	service           string
	category          string
	deliveryDate      string
	deliveryTimeRange string

	guard guard.ConstructorGuard
}

// NewDetails validates required fields and applies defaults for service and category.
//
// Example:
//
//	details, err := shipment.NewDetails("4.2kg", "", "", "2024-08-01", "10:00-14:00")
//	// details.Service() == "NovaShip", details.Category() == "package"
func NewDetails(weight, service, category, deliveryDate, deliveryTimeRange string) (Details, error) {
	d := Details{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setWeight(weight),
		d.setDeliveryDate(deliveryDate),
		d.setDeliveryTimeRange(deliveryTimeRange),
	); err != nil {
		return Details{}, err
	}

	d.service = withDefault(service, DefaultService)
	d.category = withDefault(category, DefaultCategory)

	return d, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsIsNotConstructed)
}

func (d Details) Weight() string {
	return d.weight
}

func (d Details) Service() string {
	return d.service
}

func (d Details) Category() string {
	return d.category
}

func (d Details) DeliveryDate() string {
	return d.deliveryDate
}

func (d Details) DeliveryTimeRange() string {
	return d.deliveryTimeRange
}

func (d *Details) setWeight(weight string) error {
	weight = strings.TrimSpace(weight)
	if weight == "" {
		return errs.NewValueIsRequiredError("weight")
	}
	d.weight = weight
	return nil
}

func (d *Details) setDeliveryDate(deliveryDate string) error {
	deliveryDate = strings.TrimSpace(deliveryDate)
	if deliveryDate == "" {
		return errs.NewValueIsRequiredError("delivery date")
	}
	d.deliveryDate = deliveryDate
	return nil
}

func (d *Details) setDeliveryTimeRange(deliveryTimeRange string) error {
	deliveryTimeRange = strings.TrimSpace(deliveryTimeRange)
	if deliveryTimeRange == "" {
		return errs.NewValueIsRequiredError("delivery time range")
	}
	d.deliveryTimeRange = deliveryTimeRange
	return nil
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
