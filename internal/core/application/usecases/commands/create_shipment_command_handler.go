package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// CreateShipmentCommandHandler registers new shipments.
//
// Each attempt validates the owners, draws a tracking id and inserts the
// shipment. A tracking id collision restarts the whole attempt with a fresh
// id; after MaxCreateAttempts collisions the handler gives up with a
// ConflictError. Nothing is stored for a failed attempt.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(validator, generator, repo, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrOwnerNotFound) {
//	    // unknown account
//	}
type CreateShipmentCommandHandler struct {
	validator OwnerValidator
	generator TrackingIDGenerator
	repo      ports.ShipmentRepository
	notifier  changeNotifier
	logger    *slog.Logger
}

// NewCreateShipmentCommandHandler creates the handler. publisher and logger may be nil.
func NewCreateShipmentCommandHandler(
	validator OwnerValidator,
	generator TrackingIDGenerator,
	repo ports.ShipmentRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	notifier := newChangeNotifier(publisher, logger, "create_shipment")
	return CreateShipmentCommandHandler{
		validator: validator,
		generator: generator,
		repo:      repo,
		notifier:  notifier,
		logger:    notifier.logger,
	}
}

// Handle creates the shipment in Shipped status with an empty history.
//
// Returns:
//   - *shipment.Shipment: the stored shipment
//   - error: joined ReferenceNotFoundError values, ConflictError, or an internal error
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxCreateAttempts; attempt++ {
		created, err := h.attempt(ctx, cmd)
		if err == nil {
			h.notifier.notify(ctx, shipment.ChangeCreated, created)
			return created, nil
		}
		if !errors.Is(err, ports.ErrTrackingIDTaken) {
			return nil, err
		}

		lastErr = err
		h.logger.DebugContext(ctx, "tracking id collision, retrying", "attempt", attempt)
	}

	return nil, errs.NewConflictErrorWithCause("tracking id", MaxCreateAttempts, lastErr)
}

func (h *CreateShipmentCommandHandler) attempt(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := h.validator.ValidateOwners(ctx, cmd.OwnerID(), cmd.EnterpriseID()); err != nil {
		return nil, err
	}

	candidate, err := h.generator.Generate(shipment.TrackingIDLength)
	if err != nil {
		return nil, err
	}

	trackingID, err := shipment.NewTrackingID(candidate)
	if err != nil {
		return nil, err
	}

	created, err := shipment.NewShipment(
		kernel.NewUUID(),
		trackingID,
		cmd.OwnerID(),
		cmd.EnterpriseID(),
		cmd.Details(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = h.repo.Add(ctx, created); err != nil {
		return nil, err
	}

	return created, nil
}
