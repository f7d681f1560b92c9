package shipment

import (
	"time"
)

// ChangeKind names the mutation that produced a ChangedEvent.
type ChangeKind string

const (
	ChangeCreated  ChangeKind = "shipment.created"
	ChangeLocation ChangeKind = "shipment.location_updated"
	ChangeProgress ChangeKind = "shipment.progress_appended"
	ChangeStatus   ChangeKind = "shipment.status_changed"
)

// ChangedEvent is published after a shipment mutation has been committed.
// It is a notification, not a source of truth; consumers re-read the shipment.
type ChangedEvent struct {
	Kind         ChangeKind `json:"kind"`
	ShipmentID   string     `json:"shipmentId"`
	TrackingID   string     `json:"trackingId"`
	OwnerID      string     `json:"ownerId"`
	EnterpriseID string     `json:"enterpriseId"`
	Status       string     `json:"status"`
	OccurredAt   time.Time  `json:"occurredAt"`
}

// NewChangedEvent snapshots the identifying fields of s.
func NewChangedEvent(kind ChangeKind, s *Shipment) ChangedEvent {
	return ChangedEvent{
		Kind:         kind,
		ShipmentID:   s.ID().String(),
		TrackingID:   s.TrackingID().String(),
		OwnerID:      s.OwnerID().String(),
		EnterpriseID: s.EnterpriseID().String(),
		Status:       s.Status().String(),
		OccurredAt:   s.UpdatedAt(),
	}
}
