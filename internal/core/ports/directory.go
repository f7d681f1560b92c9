package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
)

// AccountDirectory answers whether a user account exists.
type AccountDirectory interface {
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}

// EnterpriseProfile is the display data of an enterprise.
// LogoAssetID is empty when the enterprise has no logo.
type EnterpriseProfile struct {
	ID          kernel.UUID
	Name        string
	LogoAssetID string
}

// EnterpriseDirectory answers whether an enterprise exists and returns its display data.
// Get returns an errs.ObjectNotFoundError for unknown enterprises.
type EnterpriseDirectory interface {
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
	Get(ctx context.Context, id kernel.UUID) (EnterpriseProfile, error)
}
