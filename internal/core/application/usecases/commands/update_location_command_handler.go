package commands

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

// UpdateLocationCommandHandler overwrites shipment positions. Last writer wins.
type UpdateLocationCommandHandler struct {
	repo     ports.ShipmentRepository
	notifier changeNotifier
}

// NewUpdateLocationCommandHandler creates the handler. publisher and logger may be nil.
func NewUpdateLocationCommandHandler(
	repo ports.ShipmentRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		repo:     repo,
		notifier: newChangeNotifier(publisher, logger, "update_location"),
	}
}

// Handle stores the new location and returns the updated shipment.
// Returns an errs.ObjectNotFoundError for unknown shipments.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	updated, err := h.repo.UpdateLocation(ctx, cmd.ShipmentID(), cmd.Location(), time.Now())
	if err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, shipment.ChangeLocation, updated)
	return updated, nil
}
