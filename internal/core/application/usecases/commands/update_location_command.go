package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrUpdateLocationCommandIsNotConstructed = errors.New(
		"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
	)
)

// UpdateLocationCommand overwrites the last-known position of a shipment.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand validates the shipment id and coordinates.
func NewUpdateLocationCommand(shipmentID kernel.UUID, longitude, latitude float64) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setLocation(longitude, latitude),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateLocationCommand) setLocation(longitude, latitude float64) error {
	location, err := kernel.NewGeoPoint(longitude, latitude)
	if err != nil {
		return err
	}
	c.location = location
	return nil
}
