package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetShipmentsByEnterpriseQueryIsNotConstructed = errors.New(
		"GetShipmentsByEnterpriseQuery must be created via NewGetShipmentsByEnterpriseQuery constructor",
	)
)

// GetShipmentsByEnterpriseQuery lists every shipment sent by one enterprise.
type GetShipmentsByEnterpriseQuery struct {
	enterpriseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentsByEnterpriseQuery(enterpriseID kernel.UUID) (GetShipmentsByEnterpriseQuery, error) {
	if err := enterpriseID.Validate(); err != nil {
		return GetShipmentsByEnterpriseQuery{}, err
	}
	return GetShipmentsByEnterpriseQuery{enterpriseID: enterpriseID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentsByEnterpriseQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsByEnterpriseQueryIsNotConstructed)
}

func (q GetShipmentsByEnterpriseQuery) EnterpriseID() kernel.UUID {
	return q.enterpriseID
}
