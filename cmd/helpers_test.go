package cmd_test

import (
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/domain/model/kernel"
)

func trackingInput(owner, enterprise kernel.UUID) tracking.CreateShipmentInput {
	return tracking.CreateShipmentInput{
		OwnerID:           owner.String(),
		EnterpriseID:      enterprise.String(),
		Weight:            "1kg",
		DeliveryDate:      "2024-08-01",
		DeliveryTimeRange: "08:00-10:00",
	}
}
