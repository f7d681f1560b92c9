package commands_test

import (
	"errors"
	"sync"
	"testing"

	"tracking/internal/adapters/out/memory"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateStatusCommand(t *testing.T) {
	_, err := commands.NewUpdateStatusCommand(kernel.NewUUID(), shipment.StatusUnknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewUpdateStatusCommand(kernel.NewUUID(), shipment.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDelivered, cmd.Status())
}

func TestUpdateStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := newShipment(t, shipment.StatusShipped)
	cmd, err := commands.NewUpdateStatusCommand(current.ID(), shipment.StatusDelayed)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	mock.InOrder(
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
		repo.On("CompareAndSetStatus", ctx, current.ID(), shipment.StatusShipped, shipment.StatusDelayed, mock.Anything).
			Return(current, nil).Once(),
	)

	h := commands.NewUpdateStatusCommandHandler(repo, true, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_RejectsInvalidTransition(t *testing.T) {
	for _, target := range []shipment.Status{shipment.StatusShipped, shipment.StatusDelayed, shipment.StatusDelivered} {
		t.Run("delivered to "+target.String(), func(t *testing.T) {
			ctx := t.Context()
			current := newShipment(t, shipment.StatusDelivered)
			cmd, err := commands.NewUpdateStatusCommand(current.ID(), target)
			require.NoError(t, err)

			repo := new(MockShipmentRepository)
			repo.On("Get", ctx, current.ID()).Return(current, nil).Once()

			h := commands.NewUpdateStatusCommandHandler(repo, true, nil, nil)
			_, err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			repo.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatusCommandHandler_Handle_PermissiveMode(t *testing.T) {
	ctx := t.Context()
	store := memory.NewShipmentStore()
	s := newShipment(t, shipment.StatusDelivered)
	require.NoError(t, store.Add(ctx, s))
	cmd, err := commands.NewUpdateStatusCommand(s.ID(), shipment.StatusShipped)
	require.NoError(t, err)

	h := commands.NewUpdateStatusCommandHandler(store, false, nil, nil)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.StatusShipped, updated.Status())
}

func TestUpdateStatusCommandHandler_Handle_RetriesLostRace(t *testing.T) {
	ctx := t.Context()
	shipped := newShipment(t, shipment.StatusShipped)
	delayed := newShipment(t, shipment.StatusDelayed)
	cmd, err := commands.NewUpdateStatusCommand(shipped.ID(), shipment.StatusDelivered)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	mock.InOrder(
		repo.On("Get", ctx, shipped.ID()).Return(shipped, nil).Once(),
		repo.On("CompareAndSetStatus", ctx, shipped.ID(), shipment.StatusShipped, shipment.StatusDelivered, mock.Anything).
			Return(nil, ports.ErrStatusChanged).Once(),
		repo.On("Get", ctx, shipped.ID()).Return(delayed, nil).Once(),
		repo.On("CompareAndSetStatus", ctx, shipped.ID(), shipment.StatusDelayed, shipment.StatusDelivered, mock.Anything).
			Return(delayed, nil).Once(),
	)

	h := commands.NewUpdateStatusCommandHandler(repo, true, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_ConflictWhenRacesKeepLosing(t *testing.T) {
	ctx := t.Context()
	current := newShipment(t, shipment.StatusShipped)
	cmd, err := commands.NewUpdateStatusCommand(current.ID(), shipment.StatusDelayed)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	repo.On("Get", ctx, current.ID()).Return(current, nil)
	repo.On("CompareAndSetStatus", ctx, current.ID(), mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ports.ErrStatusChanged)

	h := commands.NewUpdateStatusCommandHandler(repo, true, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	repo.AssertNumberOfCalls(t, "CompareAndSetStatus", commands.MaxStatusAttempts)
}

func TestUpdateStatusCommandHandler_Handle_StoreErrors(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateStatusCommand(id, shipment.StatusDelayed)
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		h := commands.NewUpdateStatusCommandHandler(memory.NewShipmentStore(), true, nil, nil)

		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("write failure is not retried", func(t *testing.T) {
		writeErr := errors.New("connection lost")
		current := newShipment(t, shipment.StatusShipped)
		repo := new(MockShipmentRepository)
		repo.On("Get", ctx, id).Return(current, nil).Once()
		repo.On("CompareAndSetStatus", ctx, id, mock.Anything, mock.Anything, mock.Anything).Return(nil, writeErr).Once()

		h := commands.NewUpdateStatusCommandHandler(repo, true, nil, nil)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, writeErr)
		repo.AssertExpectations(t)
	})
}

func TestUpdateStatusCommandHandler_ConcurrentDeliveryHasOneWinner(t *testing.T) {
	ctx := t.Context()
	store := memory.NewShipmentStore()
	s := newShipment(t, shipment.StatusShipped)
	require.NoError(t, store.Add(ctx, s))
	h := commands.NewUpdateStatusCommandHandler(store, true, nil, nil)

	const writers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewUpdateStatusCommand(s.ID(), shipment.StatusDelivered)
			if !assert.NoError(t, err) {
				return
			}
			_, err = h.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, writers-1, rejected)
	stored, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDelivered, stored.Status())
}
