package queries_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/memory"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnterpriseDirectory struct{ mock.Mock }

func (m *MockEnterpriseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnterpriseDirectory) Get(ctx context.Context, id kernel.UUID) (ports.EnterpriseProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.EnterpriseProfile), args.Error(1)
}

type MockAssetResolver struct{ mock.Mock }

func (m *MockAssetResolver) Resolve(ctx context.Context, assetID string) (string, error) {
	args := m.Called(ctx, assetID)
	return args.String(0), args.Error(1)
}

var baseTime = time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

func seed(
	t *testing.T,
	store *memory.ShipmentStore,
	trackingID string,
	ownerID, enterpriseID kernel.UUID,
	createdAt time.Time,
) *shipment.Shipment {
	t.Helper()

	tid, err := shipment.NewTrackingID(trackingID)
	require.NoError(t, err)
	details, err := shipment.NewDetails("1kg", "", "", "2024-08-01", "all day")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tid, ownerID, enterpriseID, details, createdAt)
	require.NoError(t, err)
	require.NoError(t, store.Add(t.Context(), s))
	return s
}
