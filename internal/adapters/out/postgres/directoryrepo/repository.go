package directoryrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

var (
	_ ports.AccountDirectory    = (*GormAccountDirectory)(nil)
	_ ports.EnterpriseDirectory = (*GormEnterpriseDirectory)(nil)
)

// GormAccountDirectory implements AccountDirectory using GORM.
type GormAccountDirectory struct {
	db *gorm.DB
}

func NewGormAccountDirectory(db *gorm.DB) *GormAccountDirectory {
	return &GormAccountDirectory{db: db}
}

func (d *GormAccountDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	return exists(ctx, d.db, &AccountDTO{}, id)
}

// GormEnterpriseDirectory implements EnterpriseDirectory using GORM.
type GormEnterpriseDirectory struct {
	db *gorm.DB
}

func NewGormEnterpriseDirectory(db *gorm.DB) *GormEnterpriseDirectory {
	return &GormEnterpriseDirectory{db: db}
}

func (d *GormEnterpriseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	return exists(ctx, d.db, &EnterpriseDTO{}, id)
}

// Get returns the display data of the enterprise.
func (d *GormEnterpriseDirectory) Get(ctx context.Context, id kernel.UUID) (ports.EnterpriseProfile, error) {
	var dto EnterpriseDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EnterpriseProfile{}, errs.NewObjectNotFoundError("enterprise", id.String())
		}
		return ports.EnterpriseProfile{}, err
	}

	return toProfile(dto)
}

func exists(ctx context.Context, db *gorm.DB, model any, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id.Bytes()).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
