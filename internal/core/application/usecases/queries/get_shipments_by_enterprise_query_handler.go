package queries

import (
	"context"
	"log/slog"

	"tracking/internal/core/ports"
)

// GetShipmentsByEnterpriseQueryHandler returns an enterprise's shipments, oldest first.
type GetShipmentsByEnterpriseQueryHandler struct {
	repo     ports.ShipmentRepository
	enricher enricher
}

// NewGetShipmentsByEnterpriseQueryHandler creates the handler. assets and logger may be nil.
func NewGetShipmentsByEnterpriseQueryHandler(
	repo ports.ShipmentRepository,
	enterprises ports.EnterpriseDirectory,
	assets ports.AssetResolver,
	logger *slog.Logger,
) GetShipmentsByEnterpriseQueryHandler {
	return GetShipmentsByEnterpriseQueryHandler{
		repo:     repo,
		enricher: newEnricher(enterprises, assets, logger, "shipments_by_enterprise"),
	}
}

func (h GetShipmentsByEnterpriseQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsByEnterpriseQuery,
) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments, err := h.repo.FindByEnterprise(ctx, query.EnterpriseID())
	if err != nil {
		return nil, err
	}

	return h.enricher.enrich(ctx, shipments), nil
}
