package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/guard"
)

var (
	ErrAppendProgressCommandIsNotConstructed = errors.New(
		"AppendProgressCommand must be created via NewAppendProgressCommand constructor",
	)
)

// AppendProgressCommand adds one step to a shipment's progress history.
// The timestamp is assigned by the server when the step is stored.
type AppendProgressCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	step       shipment.ProgressStep

	guard guard.ConstructorGuard
}

// NewAppendProgressCommand validates the shipment id and the step.
func NewAppendProgressCommand(
	shipmentID kernel.UUID,
	status shipment.ProgressStatus,
	location string,
) (AppendProgressCommand, error) {
	cmd := AppendProgressCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStep(status, location),
	); err != nil {
		return AppendProgressCommand{}, err
	}

	return cmd, nil
}

func (c AppendProgressCommand) Validate() error {
	return c.guard.Validate(ErrAppendProgressCommandIsNotConstructed)
}

func (c AppendProgressCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c AppendProgressCommand) Step() shipment.ProgressStep {
	return c.step
}

func (c *AppendProgressCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AppendProgressCommand) setStep(status shipment.ProgressStatus, location string) error {
	step, err := shipment.NewProgressStep(status, location)
	if err != nil {
		return err
	}
	c.step = step
	return nil
}
