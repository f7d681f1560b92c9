package http

import (
	"time"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/shipment"
)

// Envelope is the body of every API response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	ErrorKind  string `json:"errorKind,omitempty"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type CreateShipmentRequest struct {
	UserID            string `json:"userId"`
	EnterpriseID      string `json:"enterpriseId"`
	Weight            string `json:"weight"`
	Service           string `json:"service"`
	Category          string `json:"category"`
	DeliveryDate      string `json:"deliveryDate"`
	DeliveryTimeRange string `json:"deliveryTimeRange"`
}

type UpdateLocationRequest struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

type AppendProgressRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type ProgressEntry struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

type Enterprise struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

type Shipment struct {
	ID                string          `json:"id"`
	TrackingID        string          `json:"trackingId"`
	OwnerID           string          `json:"userId"`
	EnterpriseID      string          `json:"enterpriseId"`
	Weight            string          `json:"weight"`
	Service           string          `json:"service"`
	Category          string          `json:"category"`
	Status            string          `json:"status"`
	Location          *Location       `json:"location"`
	Progress          []ProgressEntry `json:"progress"`
	DeliveryDate      string          `json:"deliveryDate"`
	DeliveryTimeRange string          `json:"deliveryTimeRange"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Enterprise        *Enterprise     `json:"enterprise,omitempty"`
}

func toShipment(s *shipment.Shipment) Shipment {
	details := s.Details()
	out := Shipment{
		ID:                s.ID().String(),
		TrackingID:        s.TrackingID().String(),
		OwnerID:           s.OwnerID().String(),
		EnterpriseID:      s.EnterpriseID().String(),
		Weight:            details.Weight(),
		Service:           details.Service(),
		Category:          details.Category(),
		Status:            s.Status().String(),
		Progress:          make([]ProgressEntry, 0, len(s.Progress())),
		DeliveryDate:      details.DeliveryDate(),
		DeliveryTimeRange: details.DeliveryTimeRange(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}

	if loc := s.Location(); loc != nil {
		out.Location = &Location{Longitude: loc.Longitude(), Latitude: loc.Latitude()}
	}

	for _, entry := range s.Progress() {
		out.Progress = append(out.Progress, ProgressEntry{
			Status:    entry.Status().String(),
			Location:  entry.Location(),
			Timestamp: entry.RecordedAt(),
		})
	}

	return out
}

func toShipmentView(view queries.ShipmentView) Shipment {
	out := toShipment(view.Shipment)
	out.Enterprise = &Enterprise{Name: view.Enterprise.Name, LogoURL: view.Enterprise.LogoURL}
	return out
}

func toShipmentViews(views []queries.ShipmentView) []Shipment {
	out := make([]Shipment, 0, len(views))
	for _, view := range views {
		out = append(out, toShipmentView(view))
	}
	return out
}
