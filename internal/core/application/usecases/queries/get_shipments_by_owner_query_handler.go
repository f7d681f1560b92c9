package queries

import (
	"context"
	"log/slog"

	"tracking/internal/core/ports"
)

// GetShipmentsByOwnerQueryHandler returns an account's shipments, oldest
// first, each with the display data of its enterprise.
type GetShipmentsByOwnerQueryHandler struct {
	repo     ports.ShipmentRepository
	enricher enricher
}

// NewGetShipmentsByOwnerQueryHandler creates the handler. assets and logger may be nil.
func NewGetShipmentsByOwnerQueryHandler(
	repo ports.ShipmentRepository,
	enterprises ports.EnterpriseDirectory,
	assets ports.AssetResolver,
	logger *slog.Logger,
) GetShipmentsByOwnerQueryHandler {
	return GetShipmentsByOwnerQueryHandler{
		repo:     repo,
		enricher: newEnricher(enterprises, assets, logger, "shipments_by_owner"),
	}
}

// Handle returns an empty slice when the account has no shipments.
func (h GetShipmentsByOwnerQueryHandler) Handle(ctx context.Context, query GetShipmentsByOwnerQuery) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments, err := h.repo.FindByOwner(ctx, query.OwnerID())
	if err != nil {
		return nil, err
	}

	return h.enricher.enrich(ctx, shipments), nil
}
