package queries

import (
	"context"
	"errors"
	"log/slog"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// TrackShipmentQueryHandler resolves tracking ids for the shipment's owner
// and for its enterprise.
//
// A shipment the requester may not see is reported exactly like a shipment
// that does not exist, so tracking ids cannot be enumerated.
type TrackShipmentQueryHandler struct {
	repo     ports.ShipmentRepository
	enricher enricher
}

// NewTrackShipmentQueryHandler creates the handler. assets and logger may be nil.
func NewTrackShipmentQueryHandler(
	repo ports.ShipmentRepository,
	enterprises ports.EnterpriseDirectory,
	assets ports.AssetResolver,
	logger *slog.Logger,
) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{
		repo:     repo,
		enricher: newEnricher(enterprises, assets, logger, "track_shipment"),
	}
}

// Handle returns an errs.ObjectNotFoundError when the shipment is unknown or not visible.
func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	notFound := errs.NewObjectNotFoundError("shipment", query.TrackingID().String())

	found, err := h.repo.GetByTrackingID(ctx, query.TrackingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ShipmentView{}, notFound
	}
	if err != nil {
		return ShipmentView{}, err
	}

	requester := query.Requester()
	if !found.IsVisibleTo(requester.AccountID, requester.EnterpriseID) {
		return ShipmentView{}, notFound
	}

	return h.enricher.enrich(ctx, []*shipment.Shipment{found})[0], nil
}
