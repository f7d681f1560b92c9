package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.ShipmentRepository = (*GormShipmentRepository)(nil)

// GormShipmentRepository implements ShipmentRepository using GORM.
//
// Appends lock the shipment row (SELECT ... FOR UPDATE) so concurrent appends
// to one shipment serialize; status changes are a single conditional UPDATE.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts the shipment and its history.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isTrackingIDViolation(err) {
			return ports.ErrTrackingIDTaken
		}
		return err
	}

	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(r.db.WithContext(ctx), id)
}

// GetByTrackingID retrieves a shipment by its tracking id.
func (r *GormShipmentRepository) GetByTrackingID(
	ctx context.Context,
	trackingID shipment.TrackingID,
) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := withProgress(r.db.WithContext(ctx)).First(&dto, "tracking_id = ?", trackingID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) FindByOwner(ctx context.Context, ownerID kernel.UUID) ([]*shipment.Shipment, error) {
	return r.find(ctx, "owner_id = ?", ownerID.Bytes())
}

func (r *GormShipmentRepository) FindByEnterprise(
	ctx context.Context,
	enterpriseID kernel.UUID,
) ([]*shipment.Shipment, error) {
	return r.find(ctx, "enterprise_id = ?", enterpriseID.Bytes())
}

func (r *GormShipmentRepository) FindByStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error) {
	return r.find(ctx, "status = ?", status.String())
}

// AppendProgress inserts the next history row while holding the shipment row lock.
func (r *GormShipmentRepository) AppendProgress(
	ctx context.Context,
	id kernel.UUID,
	step shipment.ProgressStep,
	at time.Time,
) (*shipment.Shipment, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}

	var updated *shipment.Shipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row ShipmentDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "updated_at").
			First(&row, "id = ?", id.Bytes()).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("shipment", id.String())
			}
			return err
		}

		var last []ProgressEntryDTO
		if err = tx.Where("shipment_id = ?", id.Bytes()).Order("seq DESC").Limit(1).Find(&last).Error; err != nil {
			return err
		}

		recordedAt := storedTime(at)
		seq := 1
		if len(last) > 0 {
			seq = last[0].Seq + 1
			if recordedAt.Before(last[0].RecordedAt) {
				recordedAt = last[0].RecordedAt.UTC()
			}
		}

		entry := ProgressEntryDTO{
			ShipmentID: row.ID,
			Seq:        seq,
			Status:     step.Status().String(),
			Location:   step.Location(),
			RecordedAt: recordedAt,
		}
		if err = tx.Create(&entry).Error; err != nil {
			return err
		}

		if err = touch(tx, id, recordedAt).Error; err != nil {
			return err
		}

		updated, err = r.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateLocation overwrites the location columns.
func (r *GormShipmentRepository) UpdateLocation(
	ctx context.Context,
	id kernel.UUID,
	location kernel.GeoPoint,
	at time.Time,
) (*shipment.Shipment, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	var updated *shipment.Shipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ShipmentDTO{}).
			Where("id = ?", id.Bytes()).
			Updates(map[string]any{
				"location_longitude": location.Longitude(),
				"location_latitude":  location.Latitude(),
				"updated_at":         gorm.Expr("GREATEST(updated_at, ?)", storedTime(at)),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}

		var err error
		updated, err = r.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// CompareAndSetStatus updates the status with "WHERE status = from".
func (r *GormShipmentRepository) CompareAndSetStatus(
	ctx context.Context,
	id kernel.UUID,
	from shipment.Status,
	to shipment.Status,
	at time.Time,
) (*shipment.Shipment, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}

	var updated *shipment.Shipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&ShipmentDTO{}).
			Where("id = ? AND status = ?", id.Bytes(), from.String()).
			Updates(map[string]any{
				"status":     to.String(),
				"updated_at": gorm.Expr("GREATEST(updated_at, ?)", storedTime(at)),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&ShipmentDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errs.NewObjectNotFoundError("shipment", id.String())
			}
			return ports.ErrStatusChanged
		}

		var err error
		updated, err = r.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *GormShipmentRepository) load(db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := withProgress(db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) find(ctx context.Context, query string, args ...any) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := withProgress(r.db.WithContext(ctx)).
		Where(query, args...).
		Order("created_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func withProgress(db *gorm.DB) *gorm.DB {
	return db.Preload("Progress", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

func touch(tx *gorm.DB, id kernel.UUID, at time.Time) *gorm.DB {
	return tx.Model(&ShipmentDTO{}).
		Where("id = ?", id.Bytes()).
		Update("updated_at", gorm.Expr("GREATEST(updated_at, ?)", at))
}

func isTrackingIDViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == trackingIDIndex
}
