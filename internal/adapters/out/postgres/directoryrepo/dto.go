// Package directoryrepo answers account and enterprise lookups from
// PostgreSQL. The tables are owned by the identity side of the platform;
// this package only reads them.
package directoryrepo

import (
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"

	"github.com/google/uuid"
)

// AccountDTO is the row of the accounts table.
type AccountDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

// EnterpriseDTO is the row of the enterprises table.
type EnterpriseDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	LogoAssetID string    `gorm:"type:varchar(255);not null;default:''"`
}

func (EnterpriseDTO) TableName() string {
	return "enterprises"
}

func toProfile(dto EnterpriseDTO) (ports.EnterpriseProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.EnterpriseProfile{}, err
	}

	return ports.EnterpriseProfile{ID: id, Name: dto.Name, LogoAssetID: dto.LogoAssetID}, nil
}
