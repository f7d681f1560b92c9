package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrGetShipmentsByOwnerQueryIsNotConstructed = errors.New(
		"GetShipmentsByOwnerQuery must be created via NewGetShipmentsByOwnerQuery constructor",
	)
)

// GetShipmentsByOwnerQuery lists every shipment of one account.
//
// Example:
//
//	query, _ := NewGetShipmentsByOwnerQuery(accountID)
//	views, err := handler.Handle(ctx, query)
//	for _, v := range views {
//	    fmt.Println(v.Shipment.TrackingID(), v.Enterprise.Name)
//	}
type GetShipmentsByOwnerQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentsByOwnerQuery(ownerID kernel.UUID) (GetShipmentsByOwnerQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetShipmentsByOwnerQuery{}, err
	}
	return GetShipmentsByOwnerQuery{ownerID: ownerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentsByOwnerQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsByOwnerQueryIsNotConstructed)
}

func (q GetShipmentsByOwnerQuery) OwnerID() kernel.UUID {
	return q.ownerID
}
