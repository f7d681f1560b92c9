package commands

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

// AppendProgressCommandHandler appends progress steps.
//
// The append is a single store operation, so concurrent appends to one
// shipment never lose entries. The store clamps the server timestamp so the
// history stays ordered even if the clock steps backwards.
type AppendProgressCommandHandler struct {
	repo     ports.ShipmentRepository
	notifier changeNotifier
}

// NewAppendProgressCommandHandler creates the handler. publisher and logger may be nil.
func NewAppendProgressCommandHandler(
	repo ports.ShipmentRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AppendProgressCommandHandler {
	return AppendProgressCommandHandler{
		repo:     repo,
		notifier: newChangeNotifier(publisher, logger, "append_progress"),
	}
}

// Handle appends the step and returns the updated shipment.
// Returns an errs.ObjectNotFoundError for unknown shipments.
func (h *AppendProgressCommandHandler) Handle(ctx context.Context, cmd AppendProgressCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.repo.AppendProgress(ctx, cmd.ShipmentID(), cmd.Step(), time.Now())
	if err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, shipment.ChangeProgress, updated)
	return updated, nil
}
