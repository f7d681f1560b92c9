package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/guard"
)

var (
	ErrTrackShipmentQueryIsNotConstructed = errors.New(
		"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
	)
)

// Requester identifies who asks for a shipment. AccountID is the
// authenticated account, EnterpriseID is set when the caller holds an
// enterprise credential. Either may be nil.
type Requester struct {
	AccountID    *kernel.UUID
	EnterpriseID *kernel.UUID
}

// TrackShipmentQuery looks a shipment up by its public tracking id on behalf of a requester.
type TrackShipmentQuery struct {
	trackingID shipment.TrackingID
	requester  Requester

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(trackingID string, requester Requester) (TrackShipmentQuery, error) {
	tid, err := shipment.NewTrackingID(trackingID)
	if err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{trackingID: tid, requester: requester, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) TrackingID() shipment.TrackingID {
	return q.trackingID
}

func (q TrackShipmentQuery) Requester() Requester {
	return q.requester
}
