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

// DeliveryDateLayout is the format of delivery dates the sweep understands.
const DeliveryDateLayout = time.DateOnly

// MarkOverdueShipmentsCommandHandler moves shipped shipments whose delivery
// date has passed to Delayed. Each move goes through UpdateStatusCommandHandler,
// so the state machine and compare-and-set apply exactly as for API calls.
//
// Shipments with a delivery date in another format are left alone.
type MarkOverdueShipmentsCommandHandler struct {
	repo     ports.ShipmentRepository
	statuses UpdateStatusCommandHandler
	logger   *slog.Logger
}

// NewMarkOverdueShipmentsCommandHandler creates the handler. logger may be nil.
func NewMarkOverdueShipmentsCommandHandler(
	repo ports.ShipmentRepository,
	statuses UpdateStatusCommandHandler,
	logger *slog.Logger,
) MarkOverdueShipmentsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return MarkOverdueShipmentsCommandHandler{
		repo:     repo,
		statuses: statuses,
		logger:   logger.With("component", "mark_overdue_shipments"),
	}
}

// Handle runs one sweep and returns how many shipments were marked delayed.
// Shipments that moved on concurrently are skipped; other failures are
// collected and returned together after the sweep finished.
func (h *MarkOverdueShipmentsCommandHandler) Handle(ctx context.Context, cmd MarkOverdueShipmentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	shipped, err := h.repo.FindByStatus(ctx, shipment.StatusShipped)
	if err != nil {
		return 0, err
	}

	var (
		marked   int
		failures []error
	)
	for _, s := range shipped {
		if err = ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		if !h.isOverdue(s, cmd.Today()) {
			continue
		}

		statusCmd, cmdErr := NewUpdateStatusCommand(s.ID(), shipment.StatusDelayed)
		if cmdErr != nil {
			failures = append(failures, cmdErr)
			continue
		}

		_, err = h.statuses.Handle(ctx, statusCmd)
		switch {
		case err == nil:
			marked++
		case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
			h.logger.InfoContext(ctx, "shipment moved on before it could be marked delayed",
				"shipment_id", s.ID().String(),
				"error", err,
			)
		default:
			failures = append(failures, err)
		}
	}

	return marked, errors.Join(failures...)
}

func (h *MarkOverdueShipmentsCommandHandler) isOverdue(s *shipment.Shipment, today time.Time) bool {
	due, err := time.ParseInLocation(DeliveryDateLayout, s.Details().DeliveryDate(), today.Location())
	if err != nil {
		h.logger.Debug("skipping shipment with unparsable delivery date",
			"shipment_id", s.ID().String(),
			"delivery_date", s.Details().DeliveryDate(),
		)
		return false
	}
	return due.Before(today)
}
