// Package shipmentrepo persists shipment aggregates in PostgreSQL through GORM.
// A shipment is one row in "shipments"; its progress history lives in
// "shipment_progress", one row per entry, ordered by seq.
package shipmentrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// trackingIDIndex is the unique index that enforces tracking id uniqueness.
const trackingIDIndex = "idx_shipments_tracking_id"

// ShipmentDTO is the row of the shipments table.
type ShipmentDTO struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TrackingID        string             `gorm:"type:varchar(64);not null;uniqueIndex:idx_shipments_tracking_id"`
	OwnerID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	EnterpriseID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Weight            string             `gorm:"type:varchar(64);not null"`
	Service           string             `gorm:"type:varchar(64);not null"`
	Category          string             `gorm:"type:varchar(64);not null"`
	DeliveryDate      string             `gorm:"type:varchar(64);not null"`
	DeliveryTimeRange string             `gorm:"type:varchar(64);not null"`
	Status            string             `gorm:"type:varchar(16);not null;index"`
	Location          LocationDTO        `gorm:"embedded;embeddedPrefix:location_"`
	Progress          []ProgressEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time          `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         time.Time          `gorm:"not null;autoUpdateTime:false"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// LocationDTO holds the last-known position; both columns are NULL until the first update.
type LocationDTO struct {
	Longitude *float64 `gorm:"type:double precision"`
	Latitude  *float64 `gorm:"type:double precision"`
}

// ProgressEntryDTO is one row of a shipment's progress history.
type ProgressEntryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shipment_progress_seq,priority:1"`
	Seq        int       `gorm:"not null;uniqueIndex:idx_shipment_progress_seq,priority:2"`
	Status     string    `gorm:"type:varchar(16);not null"`
	Location   string    `gorm:"type:varchar(255);not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (ProgressEntryDTO) TableName() string {
	return "shipment_progress"
}

// storedTime truncates to the precision of a PostgreSQL timestamp so that
// values read back compare equal to the ones written.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                s.ID().Bytes(),
		TrackingID:        s.TrackingID().String(),
		OwnerID:           s.OwnerID().Bytes(),
		EnterpriseID:      s.EnterpriseID().Bytes(),
		Weight:            s.Details().Weight(),
		Service:           s.Details().Service(),
		Category:          s.Details().Category(),
		DeliveryDate:      s.Details().DeliveryDate(),
		DeliveryTimeRange: s.Details().DeliveryTimeRange(),
		Status:            s.Status().String(),
		CreatedAt:         storedTime(s.CreatedAt()),
		UpdatedAt:         storedTime(s.UpdatedAt()),
	}

	if loc := s.Location(); loc != nil {
		lon, lat := loc.Longitude(), loc.Latitude()
		dto.Location = LocationDTO{Longitude: &lon, Latitude: &lat}
	}

	for i, entry := range s.Progress() {
		dto.Progress = append(dto.Progress, ProgressEntryDTO{
			ShipmentID: dto.ID,
			Seq:        i + 1,
			Status:     entry.Status().String(),
			Location:   entry.Location(),
			RecordedAt: storedTime(entry.RecordedAt()),
		})
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	enterpriseID, err := kernel.UUIDFromBytes(dto.EnterpriseID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := shipment.NewTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	details, err := shipment.NewDetails(dto.Weight, dto.Service, dto.Category, dto.DeliveryDate, dto.DeliveryTimeRange)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Location.Longitude != nil && dto.Location.Latitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Location.Longitude, *dto.Location.Latitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	progress := make([]shipment.ProgressEntry, 0, len(dto.Progress))
	for _, row := range dto.Progress {
		progressStatus, parseErr := shipment.ParseProgressStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		entry, entryErr := shipment.NewProgressEntry(progressStatus, row.Location, row.RecordedAt)
		if entryErr != nil {
			return nil, entryErr
		}
		progress = append(progress, entry)
	}

	return shipment.RestoreShipment(
		id, trackingID, ownerID, enterpriseID, details,
		status, location, progress, dto.CreatedAt, dto.UpdatedAt,
	)
}
