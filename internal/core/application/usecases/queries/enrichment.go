// Package queries contains read operations over shipments. Reads never
// modify state; listings are enriched with enterprise display data on a best
// effort basis.
package queries

import (
	"context"
	"log/slog"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
)

// EnterpriseView is the display data of the enterprise shipping a shipment.
// Fields are empty when the data could not be resolved.
type EnterpriseView struct {
	Name    string
	LogoURL string
}

// ShipmentView is a shipment together with its enterprise display data.
type ShipmentView struct {
	Shipment   *shipment.Shipment
	Enterprise EnterpriseView
}

// enricher attaches enterprise display data to shipments. Failures are
// logged and leave the view empty; they never fail the read.
type enricher struct {
	enterprises ports.EnterpriseDirectory
	assets      ports.AssetResolver
	logger      *slog.Logger
}

func newEnricher(
	enterprises ports.EnterpriseDirectory,
	assets ports.AssetResolver,
	logger *slog.Logger,
	component string,
) enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return enricher{enterprises: enterprises, assets: assets, logger: logger.With("component", component)}
}

// enrich resolves each distinct enterprise once per call.
func (e enricher) enrich(ctx context.Context, shipments []*shipment.Shipment) []ShipmentView {
	seen := make(map[kernel.UUID]EnterpriseView)
	views := make([]ShipmentView, 0, len(shipments))

	for _, s := range shipments {
		view, ok := seen[s.EnterpriseID()]
		if !ok {
			view = e.resolve(ctx, s.EnterpriseID())
			seen[s.EnterpriseID()] = view
		}
		views = append(views, ShipmentView{Shipment: s, Enterprise: view})
	}

	return views
}

func (e enricher) resolve(ctx context.Context, enterpriseID kernel.UUID) EnterpriseView {
	if e.enterprises == nil {
		return EnterpriseView{}
	}

	profile, err := e.enterprises.Get(ctx, enterpriseID)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to load enterprise profile",
			"enterprise_id", enterpriseID.String(),
			"error", err,
		)
		return EnterpriseView{}
	}

	view := EnterpriseView{Name: profile.Name}
	if profile.LogoAssetID == "" || e.assets == nil {
		return view
	}

	logoURL, err := e.assets.Resolve(ctx, profile.LogoAssetID)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to resolve enterprise logo",
			"enterprise_id", enterpriseID.String(),
			"asset_id", profile.LogoAssetID,
			"error", err,
		)
		return view
	}
	view.LogoURL = logoURL

	return view
}
