package shipment_test

import (
	"testing"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    shipment.Status
		wantErr bool
	}{
		{input: "shipped", want: shipment.StatusShipped},
		{input: "  Delayed ", want: shipment.StatusDelayed},
		{input: "DELIVERED", want: shipment.StatusDelivered},
		{input: "unknown", wantErr: true},
		{input: "in_transit", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := shipment.ParseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_StringRoundTrip(t *testing.T) {
	for _, s := range []shipment.Status{shipment.StatusShipped, shipment.StatusDelayed, shipment.StatusDelivered} {
		parsed, err := shipment.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "unknown", shipment.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, shipment.StatusShipped.Validate())
	require.ErrorIs(t, shipment.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, shipment.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    shipment.Status
		to      shipment.Status
		allowed bool
	}{
		{name: "shipped to delayed", from: shipment.StatusShipped, to: shipment.StatusDelayed, allowed: true},
		{name: "shipped to delivered", from: shipment.StatusShipped, to: shipment.StatusDelivered, allowed: true},
		{name: "delayed to shipped", from: shipment.StatusDelayed, to: shipment.StatusShipped, allowed: true},
		{name: "delayed to delivered", from: shipment.StatusDelayed, to: shipment.StatusDelivered, allowed: true},
		{name: "shipped to shipped", from: shipment.StatusShipped, to: shipment.StatusShipped},
		{name: "delayed to delayed", from: shipment.StatusDelayed, to: shipment.StatusDelayed},
		{name: "delivered to shipped", from: shipment.StatusDelivered, to: shipment.StatusShipped},
		{name: "delivered to delayed", from: shipment.StatusDelivered, to: shipment.StatusDelayed},
		{name: "delivered to delivered", from: shipment.StatusDelivered, to: shipment.StatusDelivered},
		{name: "unknown to shipped", from: shipment.StatusUnknown, to: shipment.StatusShipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.from.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Equal(t, shipment.StatusUnknown, next)
		})
	}
}

func TestStatus_TransitionToInvalidTarget(t *testing.T) {
	_, err := shipment.StatusShipped.TransitionTo(shipment.StatusUnknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, shipment.StatusDelivered.IsTerminal())
	assert.False(t, shipment.StatusShipped.IsTerminal())
	assert.False(t, shipment.StatusDelayed.IsTerminal())
}
