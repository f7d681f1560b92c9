package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// UpdateStatusCommandHandler moves shipments through the delivery state machine.
//
// The handler reads the current status, checks the transition and writes
// with compare-and-set on the status it read. If another writer changed the
// status in between, the whole read-check-write cycle is repeated, up to
// MaxStatusAttempts times.
//
// With strict disabled every valid status is accepted from any status, which
// matches the historical behaviour of the service.
type UpdateStatusCommandHandler struct {
	repo     ports.ShipmentRepository
	strict   bool
	notifier changeNotifier
	logger   *slog.Logger
}

// NewUpdateStatusCommandHandler creates the handler. publisher and logger may be nil.
func NewUpdateStatusCommandHandler(
	repo ports.ShipmentRepository,
	strict bool,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateStatusCommandHandler {
	notifier := newChangeNotifier(publisher, logger, "update_status")
	return UpdateStatusCommandHandler{
		repo:     repo,
		strict:   strict,
		notifier: notifier,
		logger:   notifier.logger,
	}
}

// Handle applies the status change and returns the updated shipment.
//
// Returns:
//   - errs.ObjectNotFoundError for unknown shipments
//   - errs.InvalidTransitionError when the state machine rejects the move
//   - errs.ConflictError when every attempt lost a race
func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxStatusAttempts; attempt++ {
		current, err := h.repo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return nil, err
		}

		if err = h.check(current.Status(), cmd.Status()); err != nil {
			return nil, err
		}

		updated, err := h.repo.CompareAndSetStatus(ctx, cmd.ShipmentID(), current.Status(), cmd.Status(), time.Now())
		if err == nil {
			h.notifier.notify(ctx, shipment.ChangeStatus, updated)
			return updated, nil
		}
		if !errors.Is(err, ports.ErrStatusChanged) {
			return nil, err
		}

		lastErr = err
		h.logger.DebugContext(ctx, "status changed concurrently, retrying",
			"shipment_id", cmd.ShipmentID().String(),
			"attempt", attempt,
		)
	}

	return nil, errs.NewConflictErrorWithCause("shipment status", MaxStatusAttempts, lastErr)
}

func (h *UpdateStatusCommandHandler) check(from, to shipment.Status) error {
	if !h.strict {
		return to.Validate()
	}
	_, err := from.TransitionTo(to)
	return err
}
