package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateShipmentCommand_ValidInput(t *testing.T) {
	owner := kernel.NewUUID()
	enterprise := kernel.NewUUID()

	cmd, err := commands.NewCreateShipmentCommand(owner, enterprise, "4.2kg", "", "", "2024-08-01", "10:00-14:00")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, owner, cmd.OwnerID())
	assert.Equal(t, enterprise, cmd.EnterpriseID())
	assert.Equal(t, shipment.DefaultService, cmd.Details().Service())
	assert.Equal(t, shipment.DefaultCategory, cmd.Details().Category())
}

func TestNewCreateShipmentCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateShipmentCommand(kernel.UUID{}, kernel.UUID{}, "", "", "", "", "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "owner id")
	assert.Contains(t, err.Error(), "enterprise id")
	assert.Contains(t, err.Error(), "weight")
}

func TestCreateShipmentCommand_ZeroValue(t *testing.T) {
	var cmd commands.CreateShipmentCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateShipmentCommandIsNotConstructed)
}
