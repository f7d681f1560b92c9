package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

var _ ports.ShipmentRepository = (*ShipmentStore)(nil)

// record is the stored form of a shipment. Aggregates handed out are always
// rebuilt from it, so callers never share memory with the store.
type record struct {
	id           kernel.UUID
	trackingID   shipment.TrackingID
	ownerID      kernel.UUID
	enterpriseID kernel.UUID
	details      shipment.Details
	status       shipment.Status
	location     *kernel.GeoPoint
	progress     []shipment.ProgressEntry
	createdAt    time.Time
	updatedAt    time.Time
	seq          uint64
}

// ShipmentStore keeps shipments in maps guarded by a single mutex.
// Every mutation is applied under the lock, which serializes writers on
// all shipments; that is acceptable for a development driver.
type ShipmentStore struct {
	mu         sync.RWMutex
	byID       map[kernel.UUID]*record
	byTracking map[string]kernel.UUID
	nextSeq    uint64
}

// NewShipmentStore creates an empty store.
func NewShipmentStore() *ShipmentStore {
	return &ShipmentStore{
		byID:       make(map[kernel.UUID]*record),
		byTracking: make(map[string]kernel.UUID),
	}
}

// Add stores a new shipment. Returns ports.ErrTrackingIDTaken on a tracking id collision.
func (s *ShipmentStore) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byTracking[aggregate.TrackingID().String()]; taken {
		return ports.ErrTrackingIDTaken
	}
	if _, exists := s.byID[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("shipment id already exists")
	}

	s.nextSeq++
	s.byID[aggregate.ID()] = &record{
		id:           aggregate.ID(),
		trackingID:   aggregate.TrackingID(),
		ownerID:      aggregate.OwnerID(),
		enterpriseID: aggregate.EnterpriseID(),
		details:      aggregate.Details(),
		status:       aggregate.Status(),
		location:     aggregate.Location(),
		progress:     aggregate.Progress(),
		createdAt:    aggregate.CreatedAt(),
		updatedAt:    aggregate.UpdatedAt(),
		seq:          s.nextSeq,
	}
	s.byTracking[aggregate.TrackingID().String()] = aggregate.ID()

	return nil
}

// Get retrieves a shipment by id.
func (s *ShipmentStore) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}
	return rec.restore()
}

// GetByTrackingID retrieves a shipment by its tracking id.
func (s *ShipmentStore) GetByTrackingID(ctx context.Context, trackingID shipment.TrackingID) (*shipment.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTracking[trackingID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", trackingID.String())
	}
	return s.byID[id].restore()
}

func (s *ShipmentStore) FindByOwner(ctx context.Context, ownerID kernel.UUID) ([]*shipment.Shipment, error) {
	return s.find(ctx, func(r *record) bool { return r.ownerID == ownerID })
}

func (s *ShipmentStore) FindByEnterprise(ctx context.Context, enterpriseID kernel.UUID) ([]*shipment.Shipment, error) {
	return s.find(ctx, func(r *record) bool { return r.enterpriseID == enterpriseID })
}

func (s *ShipmentStore) FindByStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error) {
	return s.find(ctx, func(r *record) bool { return r.status == status })
}

// AppendProgress appends step stamped with at, or with the latest entry's
// time if at precedes it.
func (s *ShipmentStore) AppendProgress(
	ctx context.Context,
	id kernel.UUID,
	step shipment.ProgressStep,
	at time.Time,
) (*shipment.Shipment, error) {
	return s.mutate(ctx, id, func(r *record) error {
		if n := len(r.progress); n > 0 {
			if last := r.progress[n-1].RecordedAt(); at.Before(last) {
				at = last
			}
		}

		entry, err := step.At(at)
		if err != nil {
			return err
		}

		r.progress = append(r.progress, entry)
		r.touch(entry.RecordedAt())
		return nil
	})
}

// UpdateLocation overwrites the last-known position.
func (s *ShipmentStore) UpdateLocation(
	ctx context.Context,
	id kernel.UUID,
	location kernel.GeoPoint,
	at time.Time,
) (*shipment.Shipment, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(r *record) error {
		r.location = &location
		r.touch(at)
		return nil
	})
}

// CompareAndSetStatus sets the status only if it still equals from.
func (s *ShipmentStore) CompareAndSetStatus(
	ctx context.Context,
	id kernel.UUID,
	from shipment.Status,
	to shipment.Status,
	at time.Time,
) (*shipment.Shipment, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(r *record) error {
		if r.status != from {
			return ports.ErrStatusChanged
		}
		r.status = to
		r.touch(at)
		return nil
	})
}

func (s *ShipmentStore) mutate(ctx context.Context, id kernel.UUID, apply func(r *record) error) (*shipment.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}

	// apply works on a copy so a failed mutation leaves the record untouched
	updated := *rec
	updated.progress = slices.Clone(rec.progress)
	if err := apply(&updated); err != nil {
		return nil, err
	}

	s.byID[id] = &updated
	return updated.restore()
}

func (s *ShipmentStore) find(ctx context.Context, match func(r *record) bool) ([]*shipment.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]*record, 0)
	for _, rec := range s.byID {
		if match(rec) {
			matched = append(matched, rec)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *record) int {
		if c := a.createdAt.Compare(b.createdAt); c != 0 {
			return c
		}
		return int(a.seq) - int(b.seq)
	})

	result := make([]*shipment.Shipment, 0, len(matched))
	for _, rec := range matched {
		restored, err := rec.restore()
		if err != nil {
			return nil, err
		}
		result = append(result, restored)
	}

	return result, nil
}

func (r *record) touch(at time.Time) {
	if at = at.UTC(); at.After(r.updatedAt) {
		r.updatedAt = at
	}
}

func (r *record) restore() (*shipment.Shipment, error) {
	return shipment.RestoreShipment(
		r.id,
		r.trackingID,
		r.ownerID,
		r.enterpriseID,
		r.details,
		r.status,
		r.location,
		r.progress,
		r.createdAt,
		r.updatedAt,
	)
}
