package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
)

// CreateShipmentCommand represents a request to register a new shipment.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(ownerID, enterpriseID, "4.2kg", "", "", "2024-08-01", "10:00-14:00")
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	fmt.Println(created.TrackingID())
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	enterpriseID kernel.UUID
	details      shipment.Details

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates identifiers and details.
// Service and category fall back to their defaults when blank.
func NewCreateShipmentCommand(
	ownerID kernel.UUID,
	enterpriseID kernel.UUID,
	weight string,
	service string,
	category string,
	deliveryDate string,
	deliveryTimeRange string,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setEnterpriseID(enterpriseID),
		cmd.setDetails(weight, service, category, deliveryDate, deliveryTimeRange),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

func (c CreateShipmentCommand) EnterpriseID() kernel.UUID {
	return c.enterpriseID
}

func (c CreateShipmentCommand) Details() shipment.Details {
	return c.details
}

func (c *CreateShipmentCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner id", err)
	}
	c.ownerID = ownerID
	return nil
}

func (c *CreateShipmentCommand) setEnterpriseID(enterpriseID kernel.UUID) error {
	if err := enterpriseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("enterprise id", err)
	}
	c.enterpriseID = enterpriseID
	return nil
}

func (c *CreateShipmentCommand) setDetails(weight, service, category, deliveryDate, deliveryTimeRange string) error {
	details, err := shipment.NewDetails(weight, service, category, deliveryDate, deliveryTimeRange)
	if err != nil {
		return err
	}
	c.details = details
	return nil
}
