package commands_test

import (
	"errors"
	"sync"
	"testing"

	"tracking/internal/adapters/out/memory"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T) commands.CreateShipmentCommand {
	t.Helper()

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), "4.2kg", "", "", "2024-08-01", "10:00-14:00")
	require.NoError(t, err)
	return cmd
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	publisher := new(MockEventPublisher)
	mock.InOrder(
		validator.On("ValidateOwners", ctx, cmd.OwnerID(), cmd.EnterpriseID()).Return(nil).Once(),
		generator.On("Generate", shipment.TrackingIDLength).Return("A1b2C3d4E5f6G7h8", nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e shipment.ChangedEvent) bool {
			return e.Kind == shipment.ChangeCreated && e.TrackingID == "A1b2C3d4E5f6G7h8"
		})).Return(nil).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, publisher, nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "A1b2C3d4E5f6G7h8", created.TrackingID().String())
	assert.Equal(t, shipment.StatusShipped, created.Status())
	assert.Empty(t, created.Progress())
	assert.Nil(t, created.Location())
	assert.Equal(t, cmd.OwnerID(), created.OwnerID())
	validator.AssertExpectations(t)
	generator.AssertExpectations(t)
	repo.AssertExpectations(t)
	waitForPublications(t, publisher, 1)
	publisher.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateShipmentCommandHandler(nil, nil, nil, nil, nil)

	_, err := h.Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
}

func TestCreateShipmentCommandHandler_Handle_OwnerNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)
	missing := errs.NewReferenceNotFoundError(errs.OwnerNotFound, cmd.OwnerID().String())

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	validator.On("ValidateOwners", ctx, cmd.OwnerID(), cmd.EnterpriseID()).Return(missing).Once()

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, nil, nil)
	created, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrOwnerNotFound)
	assert.Nil(t, created)
	generator.AssertNotCalled(t, "Generate", mock.Anything)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_RetriesOnCollision(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	validator.On("ValidateOwners", ctx, mock.Anything, mock.Anything).Return(nil).Times(2)
	mock.InOrder(
		generator.On("Generate", shipment.TrackingIDLength).Return("taken1", nil).Once(),
		generator.On("Generate", shipment.TrackingIDLength).Return("fresh1", nil).Once(),
	)
	repo.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.TrackingID().String() == "taken1"
	})).Return(ports.ErrTrackingIDTaken).Once()
	repo.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.TrackingID().String() == "fresh1"
	})).Return(nil).Once()

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, nil, nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "fresh1", created.TrackingID().String())
	validator.AssertExpectations(t)
	generator.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ConflictAfterMaxAttempts(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	validator.On("ValidateOwners", ctx, mock.Anything, mock.Anything).Return(nil)
	generator.On("Generate", shipment.TrackingIDLength).Return("always1", nil)
	repo.On("Add", ctx, mock.Anything).Return(ports.ErrTrackingIDTaken)

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, nil, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	repo.AssertNumberOfCalls(t, "Add", commands.MaxCreateAttempts)
	generator.AssertNumberOfCalls(t, "Generate", commands.MaxCreateAttempts)
}

func TestCreateShipmentCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)
	storeErr := errors.New("disk full")

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	validator.On("ValidateOwners", ctx, mock.Anything, mock.Anything).Return(nil)
	generator.On("Generate", shipment.TrackingIDLength).Return("A1b2C3d4E5f6G7h8", nil)
	repo.On("Add", ctx, mock.Anything).Return(storeErr).Once()

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, nil, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, errs.ErrConflict)
	repo.AssertNumberOfCalls(t, "Add", 1)
}

func TestCreateShipmentCommandHandler_Handle_PublishFailureIsIgnored(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t)

	validator := new(MockOwnerValidator)
	generator := new(MockTrackingIDGenerator)
	repo := new(MockShipmentRepository)
	publisher := new(MockEventPublisher)
	validator.On("ValidateOwners", ctx, mock.Anything, mock.Anything).Return(nil)
	generator.On("Generate", shipment.TrackingIDLength).Return("A1b2C3d4E5f6G7h8", nil)
	repo.On("Add", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewCreateShipmentCommandHandler(validator, generator, repo, publisher, nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.NotNil(t, created)
	waitForPublications(t, publisher, 1)
	publisher.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_WithMemoryStore(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	enterprise := kernel.NewUUID()
	store := memory.NewShipmentStore()
	validator := services.NewReferentialValidator(
		memory.NewDirectory(owner),
		memory.NewEnterpriseDirectory(ports.EnterpriseProfile{ID: enterprise, Name: "Acme"}),
	)
	events := memory.NewEventLog()
	h := commands.NewCreateShipmentCommandHandler(validator, services.NewIdentifierGenerator(nil), store, events, nil)

	t.Run("distinct tracking ids", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			cmd, err := commands.NewCreateShipmentCommand(owner, enterprise, "1kg", "", "", "2024-08-01", "all day")
			require.NoError(t, err)

			created, err := h.Handle(ctx, cmd)
			require.NoError(t, err)
			seen[created.TrackingID().String()] = struct{}{}
		}

		assert.Len(t, seen, 100)
		waitForEvents(t, events, 100)
	})

	t.Run("concurrent creations get distinct tracking ids", func(t *testing.T) {
		const creators = 64
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[string]struct{}, creators)
		)
		for range creators {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cmd, err := commands.NewCreateShipmentCommand(owner, enterprise, "2kg", "", "", "2024-08-02", "all day")
				if !assert.NoError(t, err) {
					return
				}
				created, err := h.Handle(ctx, cmd)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				ids[created.TrackingID().String()] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, ids, creators)
		for id := range ids {
			tid, err := shipment.NewTrackingID(id)
			require.NoError(t, err)
			found, err := store.GetByTrackingID(ctx, tid)
			require.NoError(t, err)
			assert.Equal(t, id, found.TrackingID().String())
		}
	})

	t.Run("both references missing", func(t *testing.T) {
		cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), "1kg", "", "", "2024-08-01", "all day")
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrOwnerNotFound)
		require.ErrorIs(t, err, errs.ErrEnterpriseNotFound)
		stored, findErr := store.FindByOwner(ctx, cmd.OwnerID())
		require.NoError(t, findErr)
		assert.Empty(t, stored)
	})
}
