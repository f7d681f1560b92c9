package commands_test

import (
	"fmt"
	"sync"
	"testing"

	"tracking/internal/adapters/out/memory"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAppendProgressCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewAppendProgressCommand(kernel.NewUUID(), shipment.ProgressPickedUp, "Depot")

		require.NoError(t, err)
		assert.Equal(t, shipment.ProgressPickedUp, cmd.Step().Status())
		assert.Equal(t, "Depot", cmd.Step().Location())
	})

	t.Run("blank location", func(t *testing.T) {
		_, err := commands.NewAppendProgressCommand(kernel.NewUUID(), shipment.ProgressPacking, " ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown progress status", func(t *testing.T) {
		_, err := commands.NewAppendProgressCommand(kernel.NewUUID(), shipment.ProgressUnknown, "Depot")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAppendProgressCommandHandler_Handle(t *testing.T) {
	t.Run("delegates to the store", func(t *testing.T) {
		ctx := t.Context()
		s := newShipment(t, shipment.StatusShipped)
		cmd, err := commands.NewAppendProgressCommand(s.ID(), shipment.ProgressPacking, "Warehouse")
		require.NoError(t, err)

		repo := new(MockShipmentRepository)
		repo.On("AppendProgress", ctx, s.ID(), cmd.Step(), mock.AnythingOfType("time.Time")).Return(s, nil).Once()

		h := commands.NewAppendProgressCommandHandler(repo, nil, nil)
		_, err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown shipment", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewAppendProgressCommand(kernel.NewUUID(), shipment.ProgressPacking, "Warehouse")
		require.NoError(t, err)

		h := commands.NewAppendProgressCommandHandler(memory.NewShipmentStore(), nil, nil)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestAppendProgressCommandHandler_ConcurrentAppends(t *testing.T) {
	ctx := t.Context()
	store := memory.NewShipmentStore()
	s := newShipment(t, shipment.StatusShipped)
	require.NoError(t, store.Add(ctx, s))
	events := memory.NewEventLog()
	h := commands.NewAppendProgressCommandHandler(store, events, nil)

	const writers = 25
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewAppendProgressCommand(s.ID(), shipment.ProgressInTransit, fmt.Sprintf("stop-%d", i))
			if !assert.NoError(t, err) {
				return
			}
			_, err = h.Handle(ctx, cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	progress := stored.Progress()
	require.Len(t, progress, writers)
	for i := 1; i < len(progress); i++ {
		assert.False(t, progress[i].RecordedAt().Before(progress[i-1].RecordedAt()))
	}
	waitForEvents(t, events, writers)
}
