// Package tracking is the public surface of the shipment tracking core.
// It accepts raw transport values, runs the matching command or query and
// wraps the outcome in a Result envelope with a stable ErrorKind.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/metrics"
	"tracking/internal/pkg/errs"
)

// CreateShipmentInput carries the fields of a new shipment as received from a client.
type CreateShipmentInput struct {
	OwnerID           string
	EnterpriseID      string
	Weight            string
	Service           string
	Category          string
	DeliveryDate      string
	DeliveryTimeRange string
}

// Requester is the authenticated caller of a read. Empty ids mean "not present".
type Requester struct {
	AccountID    string
	EnterpriseID string
}

// Handlers groups the use case handlers the service dispatches to.
type Handlers struct {
	CreateShipment commands.CreateShipmentCommandHandler
	UpdateLocation commands.UpdateLocationCommandHandler
	AppendProgress commands.AppendProgressCommandHandler
	UpdateStatus   commands.UpdateStatusCommandHandler
	ByOwner        queries.GetShipmentsByOwnerQueryHandler
	ByEnterprise   queries.GetShipmentsByEnterpriseQueryHandler
	TrackShipment  queries.TrackShipmentQueryHandler
}

// Service exposes the tracking operations. It is safe for concurrent use;
// all state lives in the store behind the handlers.
type Service struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewService creates the service. logger may be nil.
func NewService(handlers Handlers, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{handlers: handlers, logger: logger.With("component", "tracking_service")}
}

// CreateShipment registers a shipment for an existing account and enterprise.
func (s *Service) CreateShipment(ctx context.Context, in CreateShipmentInput) Result[*shipment.Shipment] {
	const op = "create_shipment"

	ownerID, ownerErr := parseID("owner id", in.OwnerID)
	enterpriseID, enterpriseErr := parseID("enterprise id", in.EnterpriseID)
	if err := errors.Join(ownerErr, enterpriseErr); err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(
		ownerID, enterpriseID, in.Weight, in.Service, in.Category, in.DeliveryDate, in.DeliveryTimeRange,
	)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	created, err := s.handlers.CreateShipment.Handle(ctx, cmd)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	return succeed(op, created)
}

// GetByTrackingID returns the shipment if the requester owns it or ships it.
// Every other case, including unknown or malformed ids, is reported as NotFound.
// Only an empty id is InvalidInput.
func (s *Service) GetByTrackingID(ctx context.Context, trackingID string, requester Requester) Result[queries.ShipmentView] {
	const op = "get_by_tracking_id"

	trackingID = strings.TrimSpace(trackingID)
	q, err := queries.NewTrackShipmentQuery(trackingID, queries.Requester{
		AccountID:    optionalID(requester.AccountID),
		EnterpriseID: optionalID(requester.EnterpriseID),
	})
	if err != nil {
		// An id no shipment could carry is unknown, not malformed.
		if trackingID != "" {
			err = errs.NewObjectNotFoundErrorWithCause("shipment", trackingID, err)
		}
		return failWith[queries.ShipmentView](ctx, s, op, err)
	}

	view, err := s.handlers.TrackShipment.Handle(ctx, q)
	if err != nil {
		return failWith[queries.ShipmentView](ctx, s, op, err)
	}

	return succeed(op, view)
}

// GetByOwner lists an account's shipments with enterprise display data.
func (s *Service) GetByOwner(ctx context.Context, ownerID string) Result[[]queries.ShipmentView] {
	const op = "get_by_owner"

	id, err := parseID("owner id", ownerID)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	q, err := queries.NewGetShipmentsByOwnerQuery(id)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	views, err := s.handlers.ByOwner.Handle(ctx, q)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	return succeed(op, views)
}

// GetByEnterprise lists an enterprise's shipments.
func (s *Service) GetByEnterprise(ctx context.Context, enterpriseID string) Result[[]queries.ShipmentView] {
	const op = "get_by_enterprise"

	id, err := parseID("enterprise id", enterpriseID)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	q, err := queries.NewGetShipmentsByEnterpriseQuery(id)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	views, err := s.handlers.ByEnterprise.Handle(ctx, q)
	if err != nil {
		return failWith[[]queries.ShipmentView](ctx, s, op, err)
	}

	return succeed(op, views)
}

// UpdateLocation overwrites a shipment's last-known position.
func (s *Service) UpdateLocation(ctx context.Context, shipmentID string, longitude, latitude float64) Result[*shipment.Shipment] {
	const op = "update_location"

	id, err := parseID("shipment id", shipmentID)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(id, longitude, latitude)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	updated, err := s.handlers.UpdateLocation.Handle(ctx, cmd)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	return succeed(op, updated)
}

// AppendProgress records a progress step. status is one of packing,
// picked_up or in_transit; hyphenated spellings are accepted.
func (s *Service) AppendProgress(ctx context.Context, shipmentID, status, location string) Result[*shipment.Shipment] {
	const op = "append_progress"

	id, err := parseID("shipment id", shipmentID)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	progressStatus, err := shipment.ParseProgressStatus(status)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	cmd, err := commands.NewAppendProgressCommand(id, progressStatus, location)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	updated, err := s.handlers.AppendProgress.Handle(ctx, cmd)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	return succeed(op, updated)
}

// UpdateStatus moves a shipment to shipped, delayed or delivered.
func (s *Service) UpdateStatus(ctx context.Context, shipmentID, status string) Result[*shipment.Shipment] {
	const op = "update_status"

	id, err := parseID("shipment id", shipmentID)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	target, err := shipment.ParseStatus(status)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	cmd, err := commands.NewUpdateStatusCommand(id, target)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	updated, err := s.handlers.UpdateStatus.Handle(ctx, cmd)
	if err != nil {
		return failWith[*shipment.Shipment](ctx, s, op, err)
	}

	return succeed(op, updated)
}

func succeed[T any](op string, data T) Result[T] {
	metrics.OperationsTotal.WithLabelValues(op, "ok").Inc()
	return ok(data)
}

func failWith[T any](ctx context.Context, s *Service, op string, err error) Result[T] {
	kind, message := classify(err)
	metrics.OperationsTotal.WithLabelValues(op, string(kind)).Inc()

	if kind == KindInternal {
		s.logger.ErrorContext(ctx, "operation failed", "operation", op, "error", err)
	} else {
		s.logger.DebugContext(ctx, "operation rejected", "operation", op, "kind", string(kind), "error", err)
	}

	return fail[T](kind, message)
}

func parseID(name, raw string) (kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// optionalID parses an id that may be absent. Malformed ids count as absent;
// they can never match a shipment anyway.
func optionalID(raw string) *kernel.UUID {
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}
