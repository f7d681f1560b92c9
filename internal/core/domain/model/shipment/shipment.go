package shipment

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root of the tracking domain. It carries the
// shipment's identity, its owners, the sender supplied details, the current
// delivery status and the append-only progress history.
//
// Shipment follows these invariants:
//   - ID, tracking ID, owner and enterprise are set once and never change
//   - Status starts as Shipped and follows the Status state machine
//   - Progress entries are only appended, in non-decreasing time order
//
// Concurrency control is the store's job: the aggregate is a snapshot of one
// read and is never shared between requests.
type Shipment struct {
	id           kernel.UUID
	trackingID   TrackingID
	ownerID      kernel.UUID
	enterpriseID kernel.UUID
	details      Details
	status       Status
	location     *kernel.GeoPoint
	progress     []ProgressEntry
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewShipment creates a freshly issued shipment in Shipped status with an
// empty progress history and no known location.
//
// Example:
//
//	trackingID, _ := shipment.NewTrackingID("A1b2C3d4E5f6G7h8")
//	details, _ := shipment.NewDetails("4.2kg", "", "", "2024-08-01", "10:00-14:00")
//	s, err := shipment.NewShipment(kernel.NewUUID(), trackingID, ownerID, enterpriseID, details, time.Now())
func NewShipment(
	id kernel.UUID,
	trackingID TrackingID,
	ownerID kernel.UUID,
	enterpriseID kernel.UUID,
	details Details,
	createdAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:        StatusShipped,
		progress:      make([]ProgressEntry, 0),
		createdAt:     createdAt.UTC(),
		updatedAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingID(trackingID),
		s.setOwnerID(ownerID),
		s.setEnterpriseID(enterpriseID),
		s.setDetails(details),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rebuilds a shipment from persisted state. Unlike
// NewShipment it accepts any valid status, location and history.
func RestoreShipment(
	id kernel.UUID,
	trackingID TrackingID,
	ownerID kernel.UUID,
	enterpriseID kernel.UUID,
	details Details,
	status Status,
	location *kernel.GeoPoint,
	progress []ProgressEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, trackingID, ownerID, enterpriseID, details, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	s.status = status
	s.updatedAt = updatedAt.UTC()

	if location != nil {
		if err = s.SetLocation(*location, updatedAt); err != nil {
			return nil, err
		}
	}

	for _, entry := range progress {
		if err = s.AppendProgress(entry); err != nil {
			return nil, err
		}
	}
	s.updatedAt = updatedAt.UTC()

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingID() TrackingID {
	return s.trackingID
}

func (s *Shipment) OwnerID() kernel.UUID {
	return s.ownerID
}

func (s *Shipment) EnterpriseID() kernel.UUID {
	return s.enterpriseID
}

func (s *Shipment) Details() Details {
	return s.details
}

func (s *Shipment) Status() Status {
	return s.status
}

// Location returns the last-known position, or nil if none was reported yet.
func (s *Shipment) Location() *kernel.GeoPoint {
	if s.location == nil {
		return nil
	}
	loc := *s.location
	return &loc
}

// Progress returns a copy of the progress history in insertion order.
func (s *Shipment) Progress() []ProgressEntry {
	out := make([]ProgressEntry, len(s.progress))
	copy(out, s.progress)
	return out
}

// LastProgressAt returns the time of the latest progress entry, or the zero time.
func (s *Shipment) LastProgressAt() time.Time {
	if len(s.progress) == 0 {
		return time.Time{}
	}
	return s.progress[len(s.progress)-1].recordedAt
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetLocation overwrites the last-known position.
func (s *Shipment) SetLocation(location kernel.GeoPoint, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = &location
	s.touch(at)
	return nil
}

// AppendProgress adds an entry to the end of the history. Entries older than
// the latest one are rejected; stores clamp their clock before calling this.
func (s *Shipment) AppendProgress(entry ProgressEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	if last := s.LastProgressAt(); entry.recordedAt.Before(last) {
		return errs.NewValueIsInvalidErrorWithCause(
			"progress time",
			fmt.Errorf("%s is before the latest entry at %s", entry.recordedAt, last),
		)
	}

	s.progress = append(s.progress, entry)
	s.touch(entry.recordedAt)
	return nil
}

// ChangeStatus moves the shipment to next. With strict set the Status state
// machine decides; otherwise any valid status is accepted.
func (s *Shipment) ChangeStatus(next Status, strict bool, at time.Time) error {
	if strict {
		newStatus, err := s.status.TransitionTo(next)
		if err != nil {
			return err
		}
		next = newStatus
	} else if err := next.Validate(); err != nil {
		return err
	}

	s.status = next
	s.touch(at)
	return nil
}

// IsVisibleTo reports whether the account owns the shipment or the enterprise ships it.
// Either argument may be nil.
func (s *Shipment) IsVisibleTo(accountID *kernel.UUID, enterpriseID *kernel.UUID) bool {
	if accountID != nil && s.ownerID.IsEqual(*accountID) {
		return true
	}
	return enterpriseID != nil && s.enterpriseID.IsEqual(*enterpriseID)
}

func (s *Shipment) touch(at time.Time) {
	if at = at.UTC(); at.After(s.updatedAt) {
		s.updatedAt = at
	}
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingID(trackingID TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	s.trackingID = trackingID
	return nil
}

func (s *Shipment) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner id", err)
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setEnterpriseID(enterpriseID kernel.UUID) error {
	if err := enterpriseID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("enterprise id", err)
	}
	s.enterpriseID = enterpriseID
	return nil
}

func (s *Shipment) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	s.details = details
	return nil
}
