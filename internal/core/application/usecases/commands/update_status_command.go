package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/guard"
)

var (
	ErrUpdateStatusCommandIsNotConstructed = errors.New(
		"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
	)
)

// UpdateStatusCommand requests a move of a shipment to a new delivery status.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	status     shipment.Status

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand validates the shipment id and the target status.
func NewUpdateStatusCommand(shipmentID kernel.UUID, status shipment.Status) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c UpdateStatusCommand) Status() shipment.Status {
	return c.status
}

func (c *UpdateStatusCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
