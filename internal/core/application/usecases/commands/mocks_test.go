package commands_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingID(ctx context.Context, id shipment.TrackingID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) FindByOwner(ctx context.Context, id kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) FindByEnterprise(ctx context.Context, id kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) FindByStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, status)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) AppendProgress(
	ctx context.Context,
	id kernel.UUID,
	step shipment.ProgressStep,
	at time.Time,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, step, at)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) UpdateLocation(
	ctx context.Context,
	id kernel.UUID,
	location kernel.GeoPoint,
	at time.Time,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, location, at)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) CompareAndSetStatus(
	ctx context.Context,
	id kernel.UUID,
	from shipment.Status,
	to shipment.Status,
	at time.Time,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, from, to, at)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockOwnerValidator struct{ mock.Mock }

func (m *MockOwnerValidator) ValidateOwners(ctx context.Context, ownerID, enterpriseID kernel.UUID) error {
	args := m.Called(ctx, ownerID, enterpriseID)
	return args.Error(0)
}

type MockTrackingIDGenerator struct{ mock.Mock }

func (m *MockTrackingIDGenerator) Generate(length int) (string, error) {
	args := m.Called(length)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
	published atomic.Int32
}

func (m *MockEventPublisher) Publish(ctx context.Context, event shipment.ChangedEvent) error {
	args := m.Called(ctx, event)
	m.published.Add(1)
	return args.Error(0)
}

// waitForPublications blocks until the background publisher saw n events.
func waitForPublications(t *testing.T, publisher *MockEventPublisher, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return int(publisher.published.Load()) == n
	}, time.Second, 5*time.Millisecond)
}

func waitForEvents(t *testing.T, events interface{ Events() []shipment.ChangedEvent }, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(events.Events()) == n
	}, time.Second, 5*time.Millisecond)
}

var baseTime = time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

func newShipment(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()
	return newShipmentDue(t, status, "2024-08-01")
}

func newShipmentDue(t *testing.T, status shipment.Status, deliveryDate string) *shipment.Shipment {
	t.Helper()

	trackingID, err := shipment.NewTrackingID("A1b2C3d4E5f6G7h8")
	require.NoError(t, err)
	details, err := shipment.NewDetails("4.2kg", "", "", deliveryDate, "10:00-14:00")
	require.NoError(t, err)

	s, err := shipment.RestoreShipment(
		kernel.NewUUID(), trackingID, kernel.NewUUID(), kernel.NewUUID(), details,
		status, nil, nil, baseTime, baseTime,
	)
	require.NoError(t, err)
	return s
}
