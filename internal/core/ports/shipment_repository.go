package ports

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
)

var (
	// ErrTrackingIDTaken is returned by Add when another shipment already holds the tracking id.
	ErrTrackingIDTaken = errors.New("tracking id is already taken")

	// ErrStatusChanged is returned by CompareAndSetStatus when the stored status
	// no longer equals the expected one.
	ErrStatusChanged = errors.New("shipment status changed concurrently")
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
//
// Lookups of unknown shipments return an errs.ObjectNotFoundError. Mutations
// are applied by the store itself so that concurrent writers never lose each
// other's changes; there is no whole-document Update.
type ShipmentRepository interface {
	// Add inserts a new shipment. Returns ErrTrackingIDTaken when the tracking id
	// collides with an existing one; nothing is written in that case.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by its storage key.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingID retrieves a shipment by its public tracking id.
	GetByTrackingID(ctx context.Context, trackingID shipment.TrackingID) (*shipment.Shipment, error)

	// FindByOwner returns every shipment of the account, oldest first.
	FindByOwner(ctx context.Context, ownerID kernel.UUID) ([]*shipment.Shipment, error)

	// FindByEnterprise returns every shipment of the enterprise, oldest first.
	FindByEnterprise(ctx context.Context, enterpriseID kernel.UUID) ([]*shipment.Shipment, error)

	// FindByStatus returns every shipment currently in status, oldest first.
	FindByStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error)

	// AppendProgress atomically appends step to the history, stamped with at
	// or with the latest entry's time if at would precede it.
	AppendProgress(
		ctx context.Context,
		id kernel.UUID,
		step shipment.ProgressStep,
		at time.Time,
	) (*shipment.Shipment, error)

	// UpdateLocation overwrites the last-known position.
	UpdateLocation(ctx context.Context, id kernel.UUID, location kernel.GeoPoint, at time.Time) (*shipment.Shipment, error)

	// CompareAndSetStatus sets the status to "to" only if it currently equals "from".
	// Returns ErrStatusChanged otherwise.
	CompareAndSetStatus(
		ctx context.Context,
		id kernel.UUID,
		from shipment.Status,
		to shipment.Status,
		at time.Time,
	) (*shipment.Shipment, error)
}
