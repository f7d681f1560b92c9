package services

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// ReferentialValidator confirms that the owner account and the enterprise a
// shipment refers to exist. It is consulted only when a shipment is created.
type ReferentialValidator struct {
	accounts    ports.AccountDirectory
	enterprises ports.EnterpriseDirectory
}

// NewReferentialValidator creates a validator over the two directories.
func NewReferentialValidator(accounts ports.AccountDirectory, enterprises ports.EnterpriseDirectory) ReferentialValidator {
	return ReferentialValidator{accounts: accounts, enterprises: enterprises}
}

// ValidateOwners checks both references and reports every missing one.
//
// Returns:
//   - nil when both exist
//   - one or two joined *errs.ReferenceNotFoundError values, matchable with
//     errs.ErrOwnerNotFound and errs.ErrEnterpriseNotFound
//   - a wrapped directory error if a lookup itself failed
func (v ReferentialValidator) ValidateOwners(ctx context.Context, ownerID, enterpriseID kernel.UUID) error {
	var ownerExists, enterpriseExists bool

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		exists, err := v.accounts.Exists(groupCtx, ownerID)
		if err != nil {
			return fmt.Errorf("look up owner %s: %w", ownerID, err)
		}
		ownerExists = exists
		return nil
	})
	group.Go(func() error {
		exists, err := v.enterprises.Exists(groupCtx, enterpriseID)
		if err != nil {
			return fmt.Errorf("look up enterprise %s: %w", enterpriseID, err)
		}
		enterpriseExists = exists
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	var missing []error
	if !ownerExists {
		missing = append(missing, errs.NewReferenceNotFoundError(errs.OwnerNotFound, ownerID.String()))
	}
	if !enterpriseExists {
		missing = append(missing, errs.NewReferenceNotFoundError(errs.EnterpriseNotFound, enterpriseID.String()))
	}

	return errors.Join(missing...)
}
